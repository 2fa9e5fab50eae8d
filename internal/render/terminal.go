package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/changelog/internal/changelog"
)

// LabelStyle defines the color and icon for a kind label.
type LabelStyle struct {
	Color *color.Color
	Icon  string
}

// palette is assigned to kind labels in the order they first appear.
var palette = []*color.Color{
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
	color.New(color.FgRed),
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes repositories to the writer with terminal styling.
// Releases are listed newest first with color-coded kind labels.
func FormatTerminal(repos []changelog.Repository, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)
	styles := newStyles()

	for i, repo := range repos {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeHeader("#", repo.Name, w, opts); err != nil {
			return fmt.Errorf("formatting repository %s: %w", repo.Name, err)
		}
		if len(repo.Tags) == 0 {
			if _, err := fmt.Fprintln(w, "\n  (no matching commits)"); err != nil {
				return err
			}
			continue
		}
		for _, tag := range repo.Tags {
			if err := formatTag(tag, styles, w, opts, width); err != nil {
				return fmt.Errorf("formatting release %s: %w", tag.Name, err)
			}
		}
	}

	return nil
}

func formatTag(tag changelog.Tag, styles *styles, w io.Writer, opts FormatOptions, width int) error {
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	header := fmt.Sprintf("%s (%s)", tag.Name, pluralize(tag.Count(), "commit"))
	if err := writeHeader("##", header, w, opts); err != nil {
		return err
	}

	for _, group := range tag.Kinds {
		if err := writeKindSection(group, styles.get(group.Label), w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// styles hands out palette colors per label.
type styles struct {
	byLabel map[string]LabelStyle
}

func newStyles() *styles {
	return &styles{byLabel: make(map[string]LabelStyle)}
}

func (s *styles) get(label string) LabelStyle {
	if st, ok := s.byLabel[label]; ok {
		return st
	}
	st := LabelStyle{Color: palette[len(s.byLabel)%len(palette)], Icon: "●"}
	s.byLabel[label] = st
	return st
}

// writeHeader writes a repository or release header line.
func writeHeader(level, text string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s %s\n", level, text)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s\n", level, bold(text))
	return err
}

// writeKindSection writes a single kind label with its commits.
func writeKindSection(group changelog.KindGroup, style LabelStyle, w io.Writer, opts FormatOptions, width int) error {
	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", group.Label); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(group.Label)); err != nil {
			return err
		}
	}

	for _, c := range group.Commits {
		if err := writeCommit(c, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeCommit writes a single commit line with optional wrapping.
func writeCommit(c changelog.Commit, style LabelStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := c.Message
	meta := fmt.Sprintf("%s %s %s", c.Hash, c.Date, c.Author)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s (%s)\n", prefix, text, meta)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	faint := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, wrapped, faint(meta))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth runes, using indent for
// continuation lines. Lines never split inside a UTF-8 sequence.
func wrapText(text string, maxWidth int, indent string) string {
	remaining := []rune(text)
	if maxWidth <= 0 || len(remaining) <= maxWidth {
		return text
	}

	var lines []string
	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = trimLeadingSpaces(remaining[breakPoint:])
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

func trimLeadingSpaces(r []rune) []rune {
	for len(r) > 0 && r[0] == ' ' {
		r = r[1:]
	}
	return r
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
