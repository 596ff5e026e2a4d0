package persist

import (
	"context"
	"time"
)

// schedule (re)arms the debounce timer with body. At most one timer is
// pending at any time.
func (c *Coordinator) schedule(body []byte) {
	if c.remote == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	gen := c.gen
	c.timerBody = body
	c.wg.Add(1)
	c.timer = time.AfterFunc(c.debounce, func() {
		defer c.wg.Done()
		c.fire(gen)
	})
}

// cancelTimerLocked drops the pending timer, if any. A timer that already
// fired sees a newer generation and does nothing.
func (c *Coordinator) cancelTimerLocked() {
	if c.timer != nil && c.timer.Stop() {
		c.wg.Done()
	}
	c.timer, c.timerBody = nil, nil
	c.gen++
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.timer == nil {
		c.mu.Unlock()
		return
	}
	body := c.timerBody
	c.timer, c.timerBody = nil, nil
	c.mu.Unlock()

	c.pushGuarded(context.Background(), body)
}

// pushGuarded writes body remotely unless a write is already in flight. In
// that case the body is dropped, or parked for later with WithPendingWrite.
func (c *Coordinator) pushGuarded(ctx context.Context, body []byte) {
	c.mu.Lock()
	if c.saving {
		if c.pendingWrite {
			c.queuedWrite = body
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		c.logger.Printf("warning: cloud save skipped: another save is in flight")
		return
	}
	c.saving = true
	c.mu.Unlock()

	for body != nil {
		c.push(ctx, body)

		c.mu.Lock()
		body, c.queuedWrite = c.queuedWrite, nil
		if body == nil {
			c.saving = false
		}
		c.mu.Unlock()
	}
}

func (c *Coordinator) push(ctx context.Context, body []byte) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.remote.Put(ctx, body); err != nil {
		c.logger.Printf("warning: cloud save failed: %v", err)
	}
}
