package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text string
	hex  string
}{
	{`                 _         _`, "#818cf8"},
	{` _ __ _  _ ___| |_  __| |_____ __ ___ _`, "#a78bfa"},
	{`| '_ \ || (_-<| ' \/ _`+"`"+` / _ \ V  V / ' \`, "#c084fc"},
	{`| .__/\_,_/__/|_||_\__,_\___/\_/\_/|_||_|`, "#e879f9"},
	{`|_|`, "#f472b6"},
}

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string, color bool) {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.hex)))
	}
	fmt.Fprintf(w, "  version %s\n\n", strings.TrimSpace(version))
}
