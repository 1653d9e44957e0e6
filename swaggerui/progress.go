package swaggerui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Progress receives download progress. total is -1 when the size is unknown.
type Progress interface {
	Start(name string, total int64)
	Add(n int64)
	Done()
}

type nopProgress struct{}

func (nopProgress) Start(string, int64) {}
func (nopProgress) Add(int64)           {}
func (nopProgress) Done()               {}

const barWidth = 20

// BarProgress draws a single-line progress bar, redrawn in place:
//
//	[==========----------] swagger-v3.42.0.zip 50% 1,024/2,048 bytes
type BarProgress struct {
	mu    sync.Mutex
	w     io.Writer
	p     *message.Printer
	name  string
	total int64
	done  int64
}

// NewBarProgress returns a BarProgress writing to w, usually os.Stderr.
func NewBarProgress(w io.Writer) *BarProgress {
	return &BarProgress{w: w, p: message.NewPrinter(language.English)}
}

func (b *BarProgress) Start(name string, total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name, b.total, b.done = name, total, 0
	b.render()
}

func (b *BarProgress) Add(n int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done += n
	b.render()
}

func (b *BarProgress) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.w)
}

// Line returns the current bar without the leading carriage return.
func (b *BarProgress) Line() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.line()
}

func (b *BarProgress) render() {
	fmt.Fprint(b.w, "\r"+b.line())
}

func (b *BarProgress) line() string {
	if b.total <= 0 {
		return b.p.Sprintf("%s %d bytes", b.name, b.done)
	}
	done := min(b.done, b.total)
	filled := int(done * barWidth / b.total)
	bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)
	return b.p.Sprintf("[%s] %s %d%% %d/%d bytes", bar, b.name, done*100/b.total, b.done, b.total)
}

// progressReader reports every read to a Progress.
type progressReader struct {
	r io.Reader
	p Progress
}

func (pr progressReader) Read(buf []byte) (int, error) {
	n, err := pr.r.Read(buf)
	if n > 0 {
		pr.p.Add(int64(n))
	}
	return n, err
}
