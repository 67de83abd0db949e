package programs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/autograde/internal/capture"
)

const twoLargestBanner = "This program finds the two largest integers in a list.\nEnter values, one per line, using a blank line to signal the end of the list.\n"

// readIntegers prompts for integers until a blank line.
func readIntegers(env *capture.Env) ([]int, error) {
	var values []int
	for {
		line, err := env.Input(" ? ")
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return values, nil
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for int(): %q", line)
		}
		values = append(values, v)
	}
}

func topTwo(values []int, seed int) (int, int) {
	largest, second := seed, seed
	for _, v := range values {
		switch {
		case v > largest:
			largest, second = v, largest
		case v > second:
			second = v
		}
	}
	return largest, second
}

func reportTwo(env *capture.Env, largest, second int, format string) {
	env.Printf(format, "The largest value is", largest)
	env.Printf(format, "The second-largest value is", second)
}

func twoLargest(env *capture.Env) error {
	env.Print(twoLargestBanner)
	values, err := readIntegers(env)
	if err != nil {
		return err
	}
	largest, second := topTwo(values, math.MinInt)
	reportTwo(env, largest, second, "%s %d.\n")
	return nil
}

// twoLargestZeroSeed starts from zero, which breaks on negative input.
func twoLargestZeroSeed(env *capture.Env) error {
	env.Print(twoLargestBanner)
	values, err := readIntegers(env)
	if err != nil {
		return err
	}
	largest, second := topTwo(values, 0)
	reportTwo(env, largest, second, "%s %d.\n")
	return nil
}

// twoLargestPadded is correct but pads its lines with trailing spaces.
func twoLargestPadded(env *capture.Env) error {
	env.Print(twoLargestBanner)
	values, err := readIntegers(env)
	if err != nil {
		return err
	}
	largest, second := topTwo(values, math.MinInt)
	reportTwo(env, largest, second, "%s %d.   \n")
	return nil
}
