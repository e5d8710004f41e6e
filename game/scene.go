package game

import (
	"fmt"

	"github.com/lixenwraith/ninja-engine/asset"
	"github.com/lixenwraith/ninja-engine/component"
	"github.com/lixenwraith/ninja-engine/config"
	"github.com/lixenwraith/ninja-engine/engine"
	"github.com/lixenwraith/ninja-engine/input"
	"github.com/lixenwraith/ninja-engine/vmath"
)

// Entity priorities, lower ticks and draws first
const (
	backgroundPriority = -100
)

// Scene is the sample content spawned at startup
type Scene struct {
	Background *engine.Entity
	Player     *Player

	Width, Height int
}

// Setup loads assets and spawns the sample scene into ctx
// The play area is the configured size clipped to the surface
func Setup(ctx *engine.GameContext, router *input.Router, src component.SpriteSource, sounds Sounds, cfg *config.Config) (*Scene, error) {
	w, h := cfg.Graphics.ScreenWidth, cfg.Graphics.ScreenHeight
	if ctx.Surface != nil {
		sw, sh := ctx.Surface.Size()
		w, h = min(w, sw), min(h, sh)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("scene: play area %dx%d is empty", w, h)
	}

	bg := engine.NewEntity(backgroundPriority,
		component.NewImageComponent(ctx.RenderQueue, asset.NewSolidSprite(w, h, cfg.BackgroundColor())))

	img, err := component.LoadImageComponent(ctx.RenderQueue, src, cfg.Game.PlayerImage, cfg.ColorKey())
	if err != nil {
		return nil, fmt.Errorf("scene: player image: %w", err)
	}

	player := NewPlayer(ctx.Clock, router, img, cfg.Gravity(), sounds)
	player.MoveSpeed = cfg.Game.MoveSpeed
	player.JumpImpulse = cfg.Game.JumpImpulse
	player.Body.Bounds = &component.Bounds{Max: vmath.V2(float64(w), float64(h))}

	pw, ph := img.Drawable.Size()
	player.Place(vmath.V2(float64(w-pw)/2, float64(h-ph)))

	ctx.Spawn(bg)
	ctx.Spawn(player.Entity)
	ctx.Log.Debug("scene spawned", "width", w, "height", h, "player", player.Entity.ID())

	return &Scene{Background: bg, Player: player, Width: w, Height: h}, nil
}
