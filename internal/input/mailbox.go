// Package input holds the two single-item mailboxes through which the
// UI hands events to the simulation: the last toggle command and the
// last pointer position. They are the only producer/consumer boundary
// in the system; the tick drains the command slot at most once, so an
// event is acted on exactly once no matter how many masses are
// processed in that tick.
package input

import "github.com/san-kum/springies/internal/vect"

// Command is one discrete toggle request.
type Command int

const (
	None Command = iota
	ToggleGravity
	ToggleViscosity
	ToggleCenterMass
	ToggleWallTop
	ToggleWallRight
	ToggleWallBottom
	ToggleWallLeft
)

// Commands is a last-writer-wins slot for toggle commands. A new Post
// before the previous one is taken replaces it; this mirrors the
// "last key pressed" contract of the UI surface.
type Commands struct {
	pending Command
}

func (c *Commands) Post(cmd Command) {
	c.pending = cmd
}

// Take returns the pending command and clears the slot. The second
// return is false when nothing was posted since the last Take.
func (c *Commands) Take() (Command, bool) {
	cmd := c.pending
	c.pending = None
	return cmd, cmd != None
}

// Pointer is a last-position slot for the pointing device. Unlike
// Commands it is peeked, not consumed: the drag anchor follows the most
// recent position until Clear.
type Pointer struct {
	pos   vect.Vec
	valid bool
}

func (p *Pointer) Set(pos vect.Vec) {
	p.pos = pos
	p.valid = true
}

func (p *Pointer) Get() (vect.Vec, bool) {
	return p.pos, p.valid
}

func (p *Pointer) Clear() {
	p.valid = false
}
