package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic liveness events during long batches. Heartbeats
// without matching span ends point at a stuck file.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	stop   chan struct{}
	done   sync.WaitGroup
	once   sync.Once
}

// StartHeartbeat starts emitting every interval; it returns nil when the
// tracer is disabled or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: tracer, every: interval, stop: make(chan struct{})}
	h.done.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.done.Done()
	ticker := time.NewTicker(h.every)
	defer ticker.Stop()
	var beats uint64
	for {
		select {
		case <-ticker.C:
			beats++
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goroutineID(),
				Name:   "heartbeat",
				Detail: "#" + strconv.FormatUint(beats, 10),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Safe on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
