package postprocess

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"chaptercut/internal/logging"
)

// Progress serializes completion reporting across workers so the counter
// stays monotonic and log lines never interleave with the bar.
type Progress struct {
	mu        sync.Mutex
	total     int
	completed int
	bar       *progressbar.ProgressBar
	logger    *slog.Logger
}

// NewProgress reports to out. A progress bar is drawn only when out is a
// terminal; the log line per completion is always written.
func NewProgress(total int, out io.Writer, logger *slog.Logger) *Progress {
	p := &Progress{total: total, logger: logger}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if out != nil && isTerminal(out) {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("segments"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	return p
}

// Done records one finished job.
func (p *Progress) Done(job *Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed++
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
	attrs := []logging.Attr{
		logging.Segment(job.Segment.Index),
		logging.Int("completed", p.completed),
		logging.Int("total", p.total),
		logging.String("state", string(job.State)),
		logging.String("title", job.Segment.Title),
	}
	if job.Err != nil {
		attrs = append(attrs, logging.Error(job.Err))
	}
	p.logger.Info("segment finished", logging.Args(attrs...)...)
}

// Completed returns the number of jobs reported so far.
func (p *Progress) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Finish clears the bar.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
