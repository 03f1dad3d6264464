package render

import (
	"fmt"
	"io"
	"sync"
)

// progress prints a milestone every 10% of finished rows.
type progress struct {
	w     io.Writer
	total int

	mu        sync.Mutex
	done      int
	milestone int
}

func newProgress(w io.Writer, total int) *progress {
	if w == nil || total <= 0 {
		return nil
	}
	return &progress{w: w, total: total}
}

func (p *progress) rowDone() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	pct := p.done * 100 / p.total
	for p.milestone < 100 && pct >= p.milestone {
		fmt.Fprintf(p.w, " %3d%% ", p.milestone)
		p.milestone += 10
	}
}

func (p *progress) finish() {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "100%% complete\n")
}
