package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// palette styles the parts of a printed error.
type palette struct {
	label    func(a ...any) string
	category func(a ...any) string
	message  func(a ...any) string
	heading  func(a ...any) string
	usage    func(a ...any) string
	bullet   func(a ...any) string
}

// colored honors color.NoColor, so NO_COLOR still disables escape codes.
var colored = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	heading:  color.New(color.FgGreen, color.Bold).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

var plain = palette{
	label:    fmt.Sprint,
	category: fmt.Sprint,
	message:  fmt.Sprint,
	heading:  fmt.Sprint,
	usage:    fmt.Sprint,
	bullet:   fmt.Sprint,
}

// Format renders err as the block printed on failure:
//
//	Error [Configuration Error]: config file not found: changelog.toml
//
//	Usage: changelog [flags]
//
//	To fix this:
//	  • Run 'changelog init' to create a default changelog.toml
func Format(err *CLIError, useColor bool) string {
	if err == nil {
		return ""
	}
	p := plain
	if useColor {
		p = colored
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.heading("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// Fprint writes err to w, in color when w is a terminal.
func Fprint(w io.Writer, err *CLIError) {
	f, ok := w.(*os.File)
	fmt.Fprint(w, Format(err, ok && term.IsTerminal(int(f.Fd()))))
}
