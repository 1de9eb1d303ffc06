package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Surface renders the per-cycle progress lines of the fan control loop.
// On an interactive terminal previously printed lines are redrawn in place,
// otherwise output scrolls sequentially.
type Surface interface {
	// Clear erases the given number of previously printed lines. A no-op on
	// non-interactive surfaces.
	Clear(lines int)
	Printfln(format string, a ...interface{})
	Interactive() bool
}

// Detect returns an in-place redrawing surface when the given file is an
// interactive terminal, and a plain appending surface otherwise.
func Detect(out *os.File) Surface {
	if term.IsTerminal(int(out.Fd())) {
		return &ansiSurface{out: out}
	}
	return &plainSurface{out: out}
}

// NewPlain returns a surface that only ever appends lines to the given
// writer.
func NewPlain(out io.Writer) Surface {
	return &plainSurface{out: out}
}

type ansiSurface struct {
	out *os.File
}

func (s *ansiSurface) Clear(lines int) {
	// move the cursor up one line and erase it, once per line
	for i := 0; i < lines; i++ {
		fmt.Fprint(s.out, "\033[1A\033[2K")
	}
}

func (s *ansiSurface) Printfln(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", a...)
}

func (s *ansiSurface) Interactive() bool {
	return true
}

type plainSurface struct {
	out io.Writer
}

func (s *plainSurface) Clear(lines int) {
}

func (s *plainSurface) Printfln(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", a...)
}

func (s *plainSurface) Interactive() bool {
	return false
}
