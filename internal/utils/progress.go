package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

const descLength = 20

// Progress draws a single bar on stderr. It is inert when disabled or when
// stderr is not a terminal, so callers can report unconditionally.
type Progress struct {
	container   *mpb.Progress
	bar         *mpb.Bar
	description string
}

// NewProgress creates a bar titled title. The total is taken from the
// first Update.
func NewProgress(title string, enabled bool) *Progress {
	return newProgress(os.Stderr, title, enabled && isTerminal())
}

func newProgress(out io.Writer, title string, enabled bool) *Progress {
	p := &Progress{}
	if !enabled {
		return p
	}

	fmt.Fprintln(out)
	p.container = mpb.New(
		mpb.WithOutput(out),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)
	p.bar = p.container.New(0,
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(title, decor.WC{C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string {
				return Truncate(p.description, descLength)
			}, decor.WC{W: descLength, C: decor.DindentRight}),
			decor.CountersNoUnit("%d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)
	return p
}

// Enabled reports whether the bar is drawn
func (p *Progress) Enabled() bool {
	return p.bar != nil
}

// Update moves the bar to current of total. Its signature matches the
// progress callbacks of the export and database packages.
func (p *Progress) Update(current, total int, description string) {
	if p.bar == nil {
		return
	}

	p.description = description
	p.bar.SetTotal(int64(total), false)
	p.bar.SetCurrent(int64(current))
}

// Finish completes the bar and waits for the final render
func (p *Progress) Finish() {
	if p.container == nil {
		return
	}

	p.bar.SetTotal(-1, true)
	p.container.Wait()
	p.container = nil
	p.bar = nil
}

// Truncate shortens s to n bytes, marking the cut with "..".
func Truncate(s string, n int) string {
	if len(s) <= n || n < 2 {
		return s
	}
	return s[:n-2] + ".."
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
