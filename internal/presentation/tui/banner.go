package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _          _",
	" | |__   ___| |__   __ ___   _____",
	" | '_ \\ / _ \\ '_ \\ / _` \\ \\ / / _ \\",
	" | |_) |  __/ | | | (_| |\\ V /  __/",
	" |_.__/ \\___|_| |_|\\__,_| \\_/ \\___|",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the behave banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, out.String("  behaviour script compiler "+version).Faint())
	fmt.Fprintln(w)
}
