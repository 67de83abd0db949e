package programs

import (
	"fmt"

	"github.com/roach88/autograde/internal/capture"
)

func hailstoneSteps(env *capture.Env, n int, odd, even, done string, firstStep int) error {
	if n < 1 {
		return fmt.Errorf("hailstone needs a positive integer, got %d", n)
	}
	steps := firstStep
	for n != 1 {
		if n%2 == 0 {
			env.Printf(even, n, n/2)
			n /= 2
		} else {
			env.Printf(odd, n, 3*n+1)
			n = 3*n + 1
		}
		steps++
	}
	env.Printf(done, steps)
	return nil
}

func hailstone(env *capture.Env, n int) error {
	return hailstoneSteps(env, n,
		"%d is odd, so I make 3n+1: %d\n",
		"%d is even, so I take half: %d\n",
		"The process took %d steps to reach 1.\n", 0)
}

// hailstoneSpaced prints extra spaces but is otherwise correct.
func hailstoneSpaced(env *capture.Env, n int) error {
	return hailstoneSteps(env, n,
		"%d is odd,  so I make 3n+1: %d\n",
		"%d is even, so I   take half: %d\n",
		"  The process took %d steps to reach 1.\n", 0)
}

// hailstoneOffByOne counts one step too many.
func hailstoneOffByOne(env *capture.Env, n int) error {
	return hailstoneSteps(env, n,
		"%d is odd, so I make 3n+1: %d\n",
		"%d is even, so I take half: %d\n",
		"The process took %d steps to reach 1.\n", 1)
}
