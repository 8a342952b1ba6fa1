package out

import (
	"fmt"
	"io"
	"sync"
)

// Console is the headless page: countdown lines, panel and trigger state, and
// notices all go to one writer.
type Console struct {
	mu           sync.Mutex
	w            io.Writer
	panelVisible bool
	enabled      bool
	last         string
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, enabled: true}
}

func (c *Console) ShowCountdown(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = text
	_, _ = fmt.Fprintln(c.w, text)
}

func (c *Console) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelVisible = false
}

func (c *Console) Reveal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelVisible = true
	_, _ = fmt.Fprintln(c.w, "session complete, submitting summary")
}

func (c *Console) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *Console) Alert(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "error: %s\n", message)
}

func (c *Console) PanelVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelVisible
}

func (c *Console) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Console) LastCountdown() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
