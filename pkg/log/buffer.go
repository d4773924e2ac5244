package log

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// DefaultBufferCapacity is used when [NewBuffer] is given a non-positive
// capacity.
const DefaultBufferCapacity = 100

// Buffer is a thread-safe ring of log lines that implements [io.Writer].
// Writes are split on newlines; once full, the oldest line is dropped.
type Buffer struct {
	lines    []string
	partial  bytes.Buffer
	capacity int
	head     int
	size     int
	mu       sync.RWMutex
}

// NewBuffer creates a [Buffer] holding up to capacity lines.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &Buffer{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// Write implements [io.Writer]. Text after the last newline is held until the
// line is completed by a later write.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial.Write(p)

	for {
		line, err := b.partial.ReadString('\n')
		if err != nil {
			// No newline yet: put the fragment back.
			b.partial.Reset()
			b.partial.WriteString(line)

			break
		}

		b.push(strings.TrimSuffix(line, "\n"))
	}

	return len(p), nil
}

func (b *Buffer) push(line string) {
	b.lines[b.head] = line
	b.head = (b.head + 1) % b.capacity

	if b.size < b.capacity {
		b.size++
	}
}

// Lines returns up to n of the most recent lines, oldest first. A
// non-positive n returns every line.
func (b *Buffer) Lines(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > b.size {
		n = b.size
	}

	out := make([]string, 0, n)
	start := (b.head - n + b.capacity) % b.capacity
	for i := range n {
		out = append(out, b.lines[(start+i)%b.capacity])
	}

	return out
}

// Len returns the number of complete lines held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.size
}

// Capacity returns the maximum number of lines the buffer can hold.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Clear removes all lines, including any incomplete one.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.lines)
	b.partial.Reset()
	b.head = 0
	b.size = 0
}

// WriteTo writes every line to w, oldest first. It implements [io.WriterTo].
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, line := range b.Lines(0) {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write line: %w", err)
		}
	}

	return total, nil
}
