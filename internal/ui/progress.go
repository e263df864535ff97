package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/tara-vision/readmegen/internal/pipeline"
)

// Progress shows pipeline stages on a terminal. With a spinner the current
// stage animates on one line; without one every stage is printed.
type Progress struct {
	out      io.Writer
	renderer *Renderer
	spinner  *Spinner

	mu      sync.Mutex
	current pipeline.Stage
}

// NewProgress creates a Progress writing to out. A nil spinner prints one
// line per stage.
func NewProgress(out io.Writer, spinner *Spinner) *Progress {
	return &Progress{out: out, renderer: NewRenderer(), spinner: spinner}
}

// OnStage implements pipeline.Observer
func (p *Progress) OnStage(stage pipeline.Stage, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msg := p.renderer.StageMessage(stage, detail)
	terminal := stage == pipeline.StageDone || stage == pipeline.StageFailed

	if p.spinner == nil {
		fmt.Fprintln(p.out, msg)
		p.current = stage
		return
	}

	if terminal {
		p.spinner.Stop()
		if p.current != "" && stage == pipeline.StageDone {
			fmt.Fprintln(p.out, p.renderer.StageMessage(p.current, ""))
		}
		fmt.Fprintln(p.out, msg)
		p.current = stage
		return
	}

	if p.current != "" && p.current != stage {
		// keep a record of the finished stage above the spinner
		p.spinner.Stop()
		fmt.Fprintln(p.out, p.renderer.StageMessage(p.current, ""))
	}
	p.current = stage
	p.spinner.Start(msg)
	p.spinner.UpdateMessage(msg)
}

// Analyzed reports analysis progress under the current stage
func (p *Progress) Analyzed(done, total int) {
	p.OnStage(pipeline.StageAnalyzing, fmt.Sprintf("%d/%d files", done, total))
}
