package renderer

import (
	"sync"

	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ProgressReporter logs render progress in 10% steps. The displayed value follows the
// true completion through a critically damped spring so bursts of finished tiles do not
// make the log jump.
type ProgressReporter struct {
	logger core.Logger
	total  int

	mu          sync.Mutex
	done        int
	shown       float64
	velocity    float64
	spring      harmonica.Spring
	step        int
	lastLogged  int
	sinceUpdate int
	finished    bool
}

// NewProgressReporter creates a reporter expecting total units of work
func NewProgressReporter(logger core.Logger, total int) *ProgressReporter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &ProgressReporter{
		logger: logger,
		total:  total,
		spring: harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
		step:   max(1, total/200),
	}
}

// Add records n completed units
func (p *ProgressReporter) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished || p.total <= 0 {
		return
	}

	p.done = min(p.total, p.done+n)
	p.sinceUpdate += n
	if p.sinceUpdate < p.step {
		return
	}
	p.sinceUpdate = 0

	target := p.target()
	p.shown, p.velocity = p.spring.Update(p.shown, p.velocity, target)
	p.shown = max(0, min(p.shown, target))

	percent := int(p.shown)
	for next := p.lastLogged + 10; next <= percent && next < 100; next += 10 {
		p.logger.Printf("Progress: %d%%\n", next)
		p.lastLogged = next
	}
}

// Finish logs completion once
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true
	p.done = p.total
	p.shown = 100
	p.logger.Printf("Progress: 100%%\n")
}

// Percent returns the currently displayed completion in [0, 100]
func (p *ProgressReporter) Percent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}

func (p *ProgressReporter) target() float64 {
	return 100 * float64(p.done) / float64(p.total)
}
