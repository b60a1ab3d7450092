package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Status prints coloured one-line results.
type Status struct {
	w   io.Writer
	out *termenv.Output
}

// NewStatus returns a Status writing to w. Colour is dropped automatically
// when w is not a terminal.
func NewStatus(w io.Writer) *Status {
	return &Status{w: w, out: termenv.NewOutput(w)}
}

func (s *Status) print(symbol, color, format string, args ...any) {
	prefix := s.out.String(symbol).Foreground(s.out.Color(color)).Bold()
	fmt.Fprintf(s.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Success prints a green check line.
func (s *Status) Success(format string, args ...any) {
	s.print("✓", "#22c55e", format, args...)
}

// Warn prints a yellow warning line.
func (s *Status) Warn(format string, args ...any) {
	s.print("!", "#eab308", format, args...)
}

// Error prints a red failure line.
func (s *Status) Error(format string, args ...any) {
	s.print("✗", "#ef4444", format, args...)
}
