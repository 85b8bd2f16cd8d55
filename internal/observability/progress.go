package observability

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 40

var (
	progressLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	progressFileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// Progress renders a single-line progress bar that is redrawn in place.
type Progress struct {
	mu    sync.Mutex
	out   io.Writer
	bar   progress.Model
	total int
	done  int
}

// NewProgress creates a progress bar for total items.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
		total: total,
	}
}

// Percent returns the completed fraction in [0, 1].
func (p *Progress) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.percent()
}

func (p *Progress) percent() float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

// Increment marks one more item as finished and redraws the bar.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Progress) Increment(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done < p.total {
		p.done++
	}
	fmt.Fprintf(p.out, "\r%s %s %s",
		p.bar.ViewAs(p.percent()),
		progressLabelStyle.Render(fmt.Sprintf("%d/%d", p.done, p.total)),
		progressFileStyle.Render(label))
}

// Finish ends the progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}
