package programs

import (
	"fmt"
	"strings"

	"github.com/roach88/autograde/internal/capture"
	"github.com/roach88/autograde/internal/namespace"
)

// piece is what the domino client needs from a domino implementation. The
// unexported methods keep it out of the reflected class descriptor.
type piece interface {
	fmt.Stringer
	leftDots() int
	rightDots() int
}

type domino struct{ left, right int }

func newDomino(left, right int) piece { return domino{left, right} }

func (d domino) GetLeftDots() int  { return d.left }
func (d domino) GetRightDots() int { return d.right }
func (d domino) String() string    { return fmt.Sprintf("%d-%d", d.left, d.right) }
func (d domino) leftDots() int     { return d.GetLeftDots() }
func (d domino) rightDots() int    { return d.GetRightDots() }

// swappedDomino reports its right side as its left side.
type swappedDomino struct{ left, right int }

func newSwappedDomino(left, right int) piece { return swappedDomino{left, right} }

func (d swappedDomino) GetLeftDots() int  { return d.right }
func (d swappedDomino) GetRightDots() int { return d.right }
func (d swappedDomino) String() string    { return fmt.Sprintf("%d-%d", d.left, d.right) }
func (d swappedDomino) leftDots() int     { return d.GetLeftDots() }
func (d swappedDomino) rightDots() int    { return d.GetRightDots() }

// misspelledDomino has a typo in one accessor name.
type misspelledDomino struct{ left, right int }

func newMisspelledDomino(left, right int) piece { return misspelledDomino{left, right} }

func (d misspelledDomino) GetLefDots() int   { return d.left }
func (d misspelledDomino) GetRightDots() int { return d.right }
func (d misspelledDomino) String() string    { return fmt.Sprintf("%d-%d", d.left, d.right) }
func (d misspelledDomino) leftDots() int     { return d.GetLefDots() }
func (d misspelledDomino) rightDots() int    { return d.GetRightDots() }

// dominoClient builds a client namespace around one domino implementation.
// The client answers three commands: DrawDominoSet() and the two
// accessors on Domino(3,5).
func dominoClient(name, class string, sample any, build func(left, right int) piece) *namespace.Namespace {
	draw := func(env *capture.Env) {
		for left := 0; left <= 6; left++ {
			row := make([]string, 0, 7-left)
			for right := left; right <= 6; right++ {
				row = append(row, build(left, right).String())
			}
			env.Println(strings.Join(row, " "))
		}
	}

	client := func(env *capture.Env, cmd string) error {
		switch cmd {
		case "DrawDominoSet()":
			draw(env)
		case "Domino(3,5).getLeftDots()":
			env.Println(build(3, 5).leftDots())
		case "Domino(3,5).getRightDots()":
			env.Println(build(3, 5).rightDots())
		default:
			return fmt.Errorf("unknown command %q", cmd)
		}
		return nil
	}

	return namespace.New(name).
		DefineFunc("DominoClient", client).
		DefineFunc("DrawDominoSet", draw).
		DefineType(class, sample)
}
