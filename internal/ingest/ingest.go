package ingest

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/linemine/internal/engine/entry"
)

// Sink receives accepted text blocks. The engine satisfies this.
type Sink interface {
	Append(text string) (entry.ID, bool)
}

// Ingestor is the push-style entry point for externally produced text.
// Sources (WebSocket feed, piped stdin) offer raw blocks; the ingestor
// normalizes, drops noise, optionally runs the user filter, and forwards
// the survivors to the sink.
type Ingestor struct {
	mu       sync.Mutex
	sink     Sink
	filter   *Filter
	pageText string
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithFilter installs a user filter applied to every block.
func WithFilter(f *Filter) Option {
	return func(in *Ingestor) {
		in.filter = f
	}
}

// New creates an Ingestor feeding the given sink.
func New(sink Sink, opts ...Option) *Ingestor {
	in := &Ingestor{sink: sink}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// SetPageText records the current external selection text. Blocks that
// merely echo it are dropped, so selecting text on the source page does
// not re-mine the selection itself.
func (in *Ingestor) SetPageText(text string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.pageText = canonical(text)
}

// Offer runs one block through the pipeline. It returns the new entry id
// and true when the block became an entry.
func (in *Ingestor) Offer(text string) (entry.ID, bool) {
	text = canonical(text)
	if text == "" {
		return 0, false
	}

	in.mu.Lock()
	echo := in.pageText != "" && text == in.pageText
	filter := in.filter
	in.mu.Unlock()
	if echo {
		return 0, false
	}

	if filter != nil {
		out, keep := filter.Apply(text)
		if !keep {
			return 0, false
		}
		text = canonical(out)
		if text == "" {
			return 0, false
		}
	}

	return in.sink.Append(text)
}

// canonical trims a block and normalizes it for comparison: NFC form,
// line endings collapsed to \n.
func canonical(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
