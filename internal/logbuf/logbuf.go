package logbuf

import (
	"strings"
	"sync"

	"github.com/R-Stev/invest/internal/markup"
)

// Snapshot is the display surface's view of the buffer at one instant.
type Snapshot struct {
	Content string
	Version uint64
	Lines   int
}

// Buffer accumulates sanitized markup fragments into a single growing text
// value for the lifetime of one run. The zero value is an empty, usable
// buffer: an unset buffer is treated as the empty string.
//
// The version counter bumps on every mutation so the display can skip
// re-rendering unchanged content.
type Buffer struct {
	mu      sync.RWMutex
	content []byte
	lines   int
	version uint64
}

// Append concatenates one fragment onto the current value.
func (b *Buffer) Append(frag markup.Fragment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.append(frag)
	b.version++
}

// BulkLoad appends fragments in order as a single mutation. Used when
// attaching to output that predates the buffer, such as a past run's log.
func (b *Buffer) BulkLoad(frags []markup.Fragment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, frag := range frags {
		b.append(frag)
	}
	b.version++
}

// Reset clears the buffer to empty. Called when a new run begins while a
// previous run's output is still displayed.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = b.content[:0]
	b.lines = 0
	b.version++
}

// Snapshot returns a copy of the current value and its version.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		Content: string(b.content),
		Version: b.version,
		Lines:   b.lines,
	}
}

func (b *Buffer) append(frag markup.Fragment) {
	b.content = append(b.content, frag...)
	b.lines += strings.Count(string(frag), "\n")
}
