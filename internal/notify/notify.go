// Package notify implements the dashboard's toast notification center.
// Toasts are held server-side per session and polled by the UI; each
// Center owns its own ID counter so concurrent sessions never collide.
package notify

import (
	"sort"
	"sync"
	"time"
)

// Toast kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
	KindLoading = "loading"
)

// DefaultDuration is how long a toast stays visible unless dismissed.
const DefaultDuration = 3 * time.Second

// Toast is a single notification.
type Toast struct {
	ID      int64  `json:"id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Center manages the active toasts for one session. All methods are safe
// for concurrent use.
type Center struct {
	mu     sync.Mutex
	nextID int64
	active map[int64]Toast
	timers map[int64]*time.Timer
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{
		active: make(map[int64]Toast),
		timers: make(map[int64]*time.Timer),
	}
}

// Show adds a toast and returns its ID. Toasts auto-dismiss after
// DefaultDuration, except loading toasts which stay until dismissed
// explicitly.
func (c *Center) Show(kind, message string) int64 {
	return c.ShowFor(kind, message, DefaultDuration)
}

// ShowFor adds a toast with a custom duration. A zero or negative
// duration, or the loading kind, disables auto-dismiss.
func (c *Center) ShowFor(kind, message string, d time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.active[id] = Toast{ID: id, Kind: kind, Message: message}

	if kind != KindLoading && d > 0 {
		c.timers[id] = time.AfterFunc(d, func() {
			c.Dismiss(id)
		})
	}

	return id
}

// Dismiss removes a toast by ID. Dismissing an unknown ID is a no-op.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	delete(c.active, id)
}

// Active returns the visible toasts in insertion order.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, 0, len(c.active))
	for _, t := range c.active {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear dismisses every active toast.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	for id := range c.active {
		delete(c.active, id)
	}
}
