// Package progress shows per-repository feedback while a changelog is generated.
// A spinner runs on interactive terminals; otherwise only completion lines are printed.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display reports the progress of a fixed number of repositories.
// It satisfies changelog.Progress.
type Display struct {
	mu      sync.Mutex
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spinner *spinner.Spinner
	total   int
	current int
}

// NewDisplay creates a display writing to w for total repositories.
func NewDisplay(w io.Writer, caps TerminalCapabilities, total int) *Display {
	return &Display{
		w:       w,
		caps:    caps,
		symbols: SelectSymbols(caps),
		total:   total,
	}
}

// Start begins the line for repository name.
func (d *Display) Start(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.current++
	if !d.caps.IsTTY {
		return
	}

	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
		spinner.WithWriter(d.w),
	)
	d.spinner.Suffix = " " + d.counter() + " " + name
	d.spinner.Start()
}

// Stop ends the line for repository name with a success or failure mark.
func (d *Display) Stop(name string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}

	if err != nil {
		mark := d.symbols.Failure
		if d.caps.SupportsColor {
			mark = color.RedString(mark)
		}
		fmt.Fprintf(d.w, "%s %s %s: %v\n", mark, d.counter(), name, err)
		return
	}

	mark := d.symbols.Checkmark
	if d.caps.SupportsColor {
		mark = color.GreenString(mark)
	}
	fmt.Fprintf(d.w, "%s %s %s\n", mark, d.counter(), name)
}

func (d *Display) counter() string {
	return fmt.Sprintf("[%d/%d]", d.current, d.total)
}
