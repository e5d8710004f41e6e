package engine

import "github.com/lixenwraith/ninja-engine/vmath"

// Drawable is an opaque image handle the surface knows how to blit
type Drawable interface {
	Size() (width, height int)
}

// Surface is the display collaborator the render queue flushes into
type Surface interface {
	Blit(d Drawable, pos vmath.Vec2)
	Present()
	Size() (width, height int)
	SetTitle(title string)
}

// DrawCommand is a deferred blit carrying both ends of the interpolation
type DrawCommand struct {
	Drawable Drawable
	Position vmath.Vec2
	Previous vmath.Vec2
}

// RenderQueue collects draw commands during the render phase
// Single writer (render-tick dispatch), drained exactly once per frame by Flush
type RenderQueue struct {
	commands []DrawCommand
}

func NewRenderQueue() *RenderQueue {
	return &RenderQueue{commands: make([]DrawCommand, 0, 64)}
}

// Enqueue defers a blit until Flush, preserving enqueue order
func (q *RenderQueue) Enqueue(cmd DrawCommand) {
	q.commands = append(q.commands, cmd)
}

// Len returns the number of pending draws
func (q *RenderQueue) Len() int {
	return len(q.commands)
}

// Flush blits every pending command at Previous.Lerp(Position, fraction) and empties the queue
// Returns the number of blits issued
func (q *RenderQueue) Flush(s Surface, fraction float64) int {
	n := 0
	for _, cmd := range q.commands {
		if cmd.Drawable == nil {
			continue
		}
		s.Blit(cmd.Drawable, cmd.Previous.Lerp(cmd.Position, fraction))
		n++
	}
	clear(q.commands)
	q.commands = q.commands[:0]
	return n
}

// Discard drops pending commands without drawing
func (q *RenderQueue) Discard() {
	clear(q.commands)
	q.commands = q.commands[:0]
}
