package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// Frame is one scheduling tick addressed to a run token
type Frame struct {
	Token uint64
	At    time.Time
}

// FrameScheduler delivers one-shot frame requests on a fixed interval, like an
// animation frame callback: Request arms the next frame for a token, a later
// Request replaces it, Cancel disarms it
// Tokens are non-zero, zero means nothing pending
type FrameScheduler struct {
	interval time.Duration
	frames   chan Frame

	// pending is only cleared by a successful send or Cancel
	mu      sync.Mutex
	pending uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	delivered atomic.Uint64
}

// NewFrameScheduler creates a stopped scheduler, non-positive intervals default to 16ms
func NewFrameScheduler(interval time.Duration) *FrameScheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &FrameScheduler{
		interval: interval,
		frames:   make(chan Frame, 1),
		stopChan: make(chan struct{}),
	}
}

// Frames is the delivery channel the host loop selects on
func (fs *FrameScheduler) Frames() <-chan Frame {
	return fs.frames
}

// Request arms a frame for token, replacing any pending request
func (fs *FrameScheduler) Request(token uint64) {
	fs.mu.Lock()
	fs.pending = token
	fs.mu.Unlock()
}

// Cancel disarms the pending request, an already delivered frame is left to the token check
func (fs *FrameScheduler) Cancel() {
	fs.mu.Lock()
	fs.pending = 0
	fs.mu.Unlock()
}

// Pending returns the armed token, zero if none
func (fs *FrameScheduler) Pending() uint64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.pending
}

// Delivered counts frames handed to the channel
func (fs *FrameScheduler) Delivered() uint64 {
	return fs.delivered.Load()
}

// Start begins the ticker goroutine, repeated calls are no-ops
func (fs *FrameScheduler) Start() {
	if !fs.running.CompareAndSwap(false, true) {
		return
	}
	fs.wg.Add(1)
	go fs.loop()
}

// Stop ends the ticker goroutine and waits for it
func (fs *FrameScheduler) Stop() {
	fs.stopOnce.Do(func() {
		close(fs.stopChan)
	})
	fs.wg.Wait()
	fs.running.Store(false)
}

func (fs *FrameScheduler) loop() {
	defer fs.wg.Done()

	ticker := time.NewTicker(fs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		case now := <-ticker.C:
			fs.deliver(now)
		}
	}
}

// deliver sends the pending frame if the host drained the previous one
// The request stays armed while the channel is full
func (fs *FrameScheduler) deliver(now time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.pending == 0 {
		return
	}
	select {
	case fs.frames <- Frame{Token: fs.pending, At: now}:
		fs.pending = 0
		fs.delivered.Add(1)
	default:
	}
}
