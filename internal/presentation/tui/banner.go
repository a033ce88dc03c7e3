package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner and version to w.
// The host link may own stdout, so callers pass stderr there.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text, color string
	}{
		{`    _          _       _____ ____  __  __`, "#34d399"},
		{`   / \   _ __ __| |_   _|  ___/ ___||  \/  |`, "#2dd4bf"},
		{`  / _ \ | '__/ _' | | | | |_  \___ \| |\/| |`, "#22d3ee"},
		{` / ___ \| | | (_| | |_| |  _|  ___) | |  | |`, "#38bdf8"},
		{`/_/   \_\_|  \__,_|\__,_|_|   |____/|_|  |_|`, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  trial controller "+version).Faint())
	fmt.Fprintln(w)
}
