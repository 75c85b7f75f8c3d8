// Package theme holds the process-wide light/dark preference.
package theme

import (
	"sync"

	"videobrowse-service/model"
)

// Context is the application-scoped theme holder handed to every view.
// It lives in memory only; a restart resets it to the initial value.
type Context struct {
	mu      sync.RWMutex
	current model.Theme
	nextID  int
	subs    map[int]func(model.Theme)
}

func NewContext(initial model.Theme) *Context {
	if initial != model.ThemeLight {
		initial = model.ThemeDark
	}
	return &Context{current: initial, subs: make(map[int]func(model.Theme))}
}

func (c *Context) Get() model.Theme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set changes the theme and notifies subscribers if it actually changed.
func (c *Context) Set(t model.Theme) {
	c.mu.Lock()
	if t == c.current {
		c.mu.Unlock()
		return
	}
	c.current = t
	subs := c.snapshot()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
}

// Toggle flips between light and dark and returns the new value.
func (c *Context) Toggle() model.Theme {
	c.mu.Lock()
	c.current = c.current.Opposite()
	t := c.current
	subs := c.snapshot()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return t
}

// Subscribe registers fn for every change. The returned func unregisters it.
// A nil fn is ignored.
func (c *Context) Subscribe(fn func(model.Theme)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// snapshot must be called with mu held.
func (c *Context) snapshot() []func(model.Theme) {
	out := make([]func(model.Theme), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}
