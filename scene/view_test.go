package scene_test

import (
	"testing"

	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover struct {
	ID interop.EntityID
	*Position
	*Velocity
	Name *Name `scene:"optional"`
}

func TestViewIterMatchesRequired(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	storage.Spawn(1, Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(2, Position{X: 2})
	storage.Spawn(3, Position{X: 3}, Velocity{DX: 3}, Name{Value: "three"})

	view := scene.NewView[mover](storage)
	got := map[interop.EntityID]mover{}
	for id, m := range view.Iter() {
		assert.Equal(t, id, m.ID)
		got[id] = m
	}

	require.Len(t, got, 2)
	assert.Nil(t, got[1].Name)
	require.NotNil(t, got[3].Name)
	assert.Equal(t, "three", got[3].Name.Value)
}

func TestViewWritesThrough(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	storage.Spawn(1, Position{}, Velocity{DX: 2, DY: 1})

	view := scene.NewView[mover](storage)
	for m := range view.Values() {
		m.X += m.DX
		m.Y += m.DY
	}
	assert.Equal(t, Position{X: 2, Y: 1}, *scene.Read[Position](storage, 1))
}

func TestViewGet(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	storage.Spawn(1, Position{X: 1}, Velocity{})
	storage.Spawn(2, Position{X: 2})

	view := scene.NewView[mover](storage)
	m := view.Get(1)
	require.NotNil(t, m)
	assert.Equal(t, interop.EntityID(1), m.ID)
	assert.Nil(t, view.Get(2), "lacks a required component")
	assert.Nil(t, view.Get(99))
}

func TestViewSpawn(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	view := scene.NewView[mover](storage)

	view.Spawn(5, mover{Position: &Position{X: 4}, Velocity: &Velocity{}})
	assert.True(t, storage.Exists(5))
	assert.Equal(t, float32(4), scene.Read[Position](storage, 5).X)
	assert.Nil(t, scene.Read[Name](storage, 5))

	assert.Panics(t, func() { view.Spawn(6, mover{Position: &Position{}}) })
}

func TestViewRejectsBadFields(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	assert.Panics(t, func() { scene.NewView[struct{ X int }](storage) })
	assert.Panics(t, func() {
		scene.NewView[struct {
			P *Position `scene:"maybe"`
		}](storage)
	})
}

func TestQuerySnapshot(t *testing.T) {
	storage := scene.NewStorage(newTestRegistry())
	storage.Spawn(1, Position{}, Velocity{})

	q := scene.NewQuery[mover](storage)
	assert.Panics(t, func() { q.Iter() }, "not executed yet")

	q.Execute()
	assert.Equal(t, 1, q.Len())

	storage.Spawn(2, Position{}, Velocity{}, Score(1))
	assert.Equal(t, 1, q.Len(), "snapshot is stable until the next Execute")

	q.Execute()
	assert.Equal(t, 2, q.Len())

	var ids []interop.EntityID
	for id := range q.Iter() {
		ids = append(ids, id)
	}
	assert.ElementsMatch(t, []interop.EntityID{1, 2}, ids)
}
