package scene_test

import (
	"github.com/plus3/scriptglue/scene"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Score int32

func newTestRegistry() *scene.ComponentRegistry {
	r := scene.NewComponentRegistry()
	scene.RegisterComponent[Position](r)
	scene.RegisterComponent[Velocity](r)
	scene.RegisterComponent[Name](r)
	scene.RegisterComponent[Score](r)
	return r
}
