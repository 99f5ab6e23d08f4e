package main

import (
	"github.com/plus3/scriptglue/scene"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Player pushes its body along Direction every frame.
type Player struct {
	script.Entity
	Speed     float32
	Direction vmath.Vector2
}

func (p *Player) OnCreate() {
	if sprite, ok := script.Get[script.SpriteRenderer](p.Entity); ok {
		sprite.SetColor(vmath.Cyan)
	}
}

func (p *Player) OnUpdate(ts float32) {
	body, ok := script.Get[script.RigidBody2D](p.Entity)
	if !ok {
		return
	}
	body.ApplyLinearImpulse(p.Direction.Normalized().Scale(p.Speed * ts))
}

// Camera follows the player in XY and eases out to DistanceFromPlayer along Z.
type Camera struct {
	script.Entity
	DistanceFromPlayer float32
	ZoomTime           float32

	player *Player
	zoom   *gween.Tween
	zoomed bool
}

func (c *Camera) OnCreate() {
	if c.ZoomTime > 0 {
		c.zoom = gween.New(c.Position().Z, c.DistanceFromPlayer, c.ZoomTime, ease.OutCubic)
	} else {
		c.SetPosition(c.Position().XY().ToVector3WithZ(c.DistanceFromPlayer))
		c.zoomed = true
	}
	c.findPlayer()
}

func (c *Camera) findPlayer() {
	if e := c.FindEntityByName("Player"); !e.IsNil() {
		c.player, _ = script.As[*Player](e)
	}
}

func (c *Camera) OnUpdate(ts float32) {
	if c.player == nil {
		c.findPlayer()
	}

	pos := c.Position()
	if c.player != nil {
		pos = pos.WithXY(c.player.Position().XY())
	}
	if !c.zoomed {
		pos.Z, c.zoomed = c.zoom.Update(ts)
	}
	c.SetPosition(pos)
}

func registerBehaviors(engine *scene.ScriptEngine) {
	engine.MustRegisterClass("Sandbox.Player", func() script.Behavior {
		return &Player{Speed: 20}
	})
	engine.MustRegisterClass("Sandbox.Camera", func() script.Behavior {
		return &Camera{DistanceFromPlayer: 15, ZoomTime: 1}
	})
}
