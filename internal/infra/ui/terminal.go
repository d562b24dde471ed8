// Where: cli/internal/infra/ui/terminal.go
// What: TTY detection and emoji auto-selection.
// Why: Emoji and colors only make sense on interactive terminals.
package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// EmojiMode is the user's emoji preference.
type EmojiMode int

const (
	EmojiAuto EmojiMode = iota
	EmojiOn
	EmojiOff
)

// ResolveEmoji decides whether emoji are rendered on out.
func ResolveEmoji(out io.Writer, mode EmojiMode) bool {
	switch mode {
	case EmojiOn:
		return true
	case EmojiOff:
		return false
	}
	if strings.TrimSpace(os.Getenv("NO_EMOJI")) != "" {
		return false
	}
	if strings.ToLower(strings.TrimSpace(os.Getenv("TERM"))) == "dumb" {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return IsTerminal(file)
	}
	return false
}
