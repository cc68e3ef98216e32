// Package authmodal holds the presentation state of the authentication
// form. It performs no network calls; any component can request
// authentication through it without knowing form internals.
package authmodal

import "sync"

// Mode selects which form the modal presents.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Controller is a small state machine over {closed, open(mode)}. Mode is
// meaningful only while the modal is visible.
type Controller struct {
	mu      sync.Mutex
	visible bool
	mode    Mode
}

// NewController returns a closed controller.
func NewController() *Controller {
	return &Controller{}
}

// Open shows the modal in the given mode.
func (c *Controller) Open(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.visible = true
}

// Close hides the modal.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
}

// SwitchMode closes the modal and reopens it with the opposite mode. The
// original interface staged this over a short delay for its exit animation;
// the delay was cosmetic, so the transition collapses to close-then-open.
func (c *Controller) SwitchMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return
	}
	if c.mode == ModeLogin {
		c.mode = ModeRegister
	} else {
		c.mode = ModeLogin
	}
}

// Visible reports whether the modal is shown.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Mode returns the current mode; ok is false while the modal is closed,
// when the mode carries no meaning.
func (c *Controller) Mode() (Mode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return "", false
	}
	return c.mode, true
}
