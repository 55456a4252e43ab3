// Package stream implements the streaming WebSocket client: connect/
// reconnect state machine, heartbeat and message tasks, a fixed-capacity
// drop-oldest burst buffer, and a subscription-keyed router.
package stream

import (
	"sync"
	"sync/atomic"
	"time"
)

// BufferStats is a point-in-time read of a Buffer's counters.
type BufferStats struct {
	Inserted           uint64
	Read               uint64
	Dropped            uint64
	CurrentSize        int
	MaxSizeReached     int
	AvgLatency         time.Duration
	MaxLatency         time.Duration
	Capacity           int
	UtilizationPercent float64
}

type bufferEntry struct {
	message    Message
	insertedAt time.Time
}

// Buffer is a fixed-capacity ring that drops the oldest entry on overflow
// rather than back-pressuring the socket. Safe for concurrent
// producer/consumer use: head/tail/count move under mu, stats move
// under atomics, and readers block on a notify channel rather than
// busy-polling.
type Buffer struct {
	mu       sync.Mutex
	entries  []*bufferEntry
	head     int
	tail     int
	count    int
	capacity int

	notify chan struct{}

	inserted      uint64
	read          uint64
	dropped       uint64
	maxSizeSeen   int64
	totalLatency  int64 // nanoseconds
	maxLatency    int64 // nanoseconds
}

// NewBuffer builds a Buffer with the given capacity. Callers that wire
// buffering as optional skip the Buffer entirely for capacity 0 (see
// Config); NewBuffer itself raises any capacity below 1 to 1.
func NewBuffer(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		entries:  make([]*bufferEntry, capacity),
		capacity: capacity,
		notify:   make(chan struct{}, 1),
	}
}

func (b *Buffer) wake() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Insert adds msg to the buffer. If the buffer is full, the oldest entry
// is evicted (dropped count increments) before msg is written at the
// tail. Returns true if an eviction occurred.
func (b *Buffer) Insert(msg Message) bool {
	entry := &bufferEntry{message: msg, insertedAt: time.Now()}

	b.mu.Lock()
	evicted := false
	if b.count == b.capacity {
		evicted = true
		b.head = (b.head + 1) % b.capacity
		atomic.AddUint64(&b.dropped, 1)
	} else {
		b.count++
	}
	b.entries[b.tail] = entry
	b.tail = (b.tail + 1) % b.capacity
	currentCount := b.count
	b.mu.Unlock()

	atomic.AddUint64(&b.inserted, 1)
	b.updateMaxSize(currentCount)
	b.wake()
	return evicted
}

func (b *Buffer) updateMaxSize(size int) {
	for {
		cur := atomic.LoadInt64(&b.maxSizeSeen)
		if int64(size) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&b.maxSizeSeen, cur, int64(size)) {
			return
		}
	}
}

func (b *Buffer) updateLatency(latency time.Duration) {
	atomic.AddInt64(&b.totalLatency, int64(latency))
	for {
		cur := atomic.LoadInt64(&b.maxLatency)
		if int64(latency) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&b.maxLatency, cur, int64(latency)) {
			return
		}
	}
}

// TryRead returns the oldest message without blocking, or false if the
// buffer is currently empty.
func (b *Buffer) TryRead() (Message, bool) {
	b.mu.Lock()
	if b.count == 0 {
		b.mu.Unlock()
		return Message{}, false
	}
	entry := b.entries[b.head]
	b.entries[b.head] = nil
	b.head = (b.head + 1) % b.capacity
	b.count--
	b.mu.Unlock()

	atomic.AddUint64(&b.read, 1)
	b.updateLatency(time.Since(entry.insertedAt))
	return entry.message, true
}

// Read blocks until a message is available or ctx-like cancellation is
// signalled via done.
func (b *Buffer) Read(done <-chan struct{}) (Message, bool) {
	for {
		if msg, ok := b.TryRead(); ok {
			return msg, true
		}
		select {
		case <-b.notify:
		case <-done:
			return Message{}, false
		}
	}
}

// Len returns the current number of buffered messages.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Clear drops all buffered entries and resets the ring pointers.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		b.entries[i] = nil
	}
	b.head, b.tail, b.count = 0, 0, 0
}

// Stats returns a snapshot of the buffer's counters and derived ratios.
func (b *Buffer) Stats() BufferStats {
	read := atomic.LoadUint64(&b.read)
	totalLatency := atomic.LoadInt64(&b.totalLatency)
	var avg time.Duration
	if read > 0 {
		avg = time.Duration(totalLatency / int64(read))
	}
	current := b.Len()
	var utilization float64
	if b.capacity > 0 {
		utilization = float64(current) / float64(b.capacity) * 100
	}
	return BufferStats{
		Inserted:           atomic.LoadUint64(&b.inserted),
		Read:               read,
		Dropped:            atomic.LoadUint64(&b.dropped),
		CurrentSize:        current,
		MaxSizeReached:     int(atomic.LoadInt64(&b.maxSizeSeen)),
		AvgLatency:         avg,
		MaxLatency:         time.Duration(atomic.LoadInt64(&b.maxLatency)),
		Capacity:           b.capacity,
		UtilizationPercent: utilization,
	}
}
