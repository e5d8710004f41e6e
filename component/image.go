package component

import (
	"image/color"

	"github.com/lixenwraith/ninja-engine/asset"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// SpriteSource loads sprites by path, implemented by *asset.Loader
type SpriteSource interface {
	Load(path string, key color.Color) (*asset.Sprite, error)
}

// ImageComponent enqueues a deferred draw of Drawable at the entity position
// each render phase; the queue interpolates between previous and current position
type ImageComponent struct {
	engine.BaseComponent

	Drawable engine.Drawable
	Offset   vmath.Vec2
	Visible  bool

	queue *engine.RenderQueue
}

// NewImageComponent wraps an already-loaded drawable
func NewImageComponent(queue *engine.RenderQueue, d engine.Drawable) *ImageComponent {
	return &ImageComponent{
		BaseComponent: engine.NewBaseComponent(engine.PriorityRender),
		Drawable:      d,
		Visible:       true,
		queue:         queue,
	}
}

// LoadImageComponent loads path through src and wraps the result
// A missing file is fatal for the caller: the error is *engine.AssetNotFoundError
func LoadImageComponent(queue *engine.RenderQueue, src SpriteSource, path string, key color.Color) (*ImageComponent, error) {
	sprite, err := src.Load(path, key)
	if err != nil {
		return nil, err
	}
	return NewImageComponent(queue, sprite), nil
}

func (c *ImageComponent) RenderTick(float64) {
	if !c.Visible || c.Drawable == nil || c.queue == nil {
		return
	}
	t := c.Entity().Transform()
	c.queue.Enqueue(engine.DrawCommand{
		Drawable: c.Drawable,
		Position: t.Position.Add(c.Offset),
		Previous: t.Previous.Add(c.Offset),
	})
}
