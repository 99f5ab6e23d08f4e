package script_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/interop/interoptest"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var builtinKinds = []interop.Kind{
	interop.KindTransform,
	interop.KindRigidBody2D,
	interop.KindSpriteRenderer,
	interop.KindText,
}

func newBridge(t *testing.T, opts ...script.Option) (*script.Bridge, *interoptest.MockBoundary) {
	t.Helper()
	b := interoptest.NewMockBoundary()
	bridge, err := script.New(b, opts...)
	require.NoError(t, err)
	return bridge, b
}

func TestNewRejectsVersionMismatch(t *testing.T) {
	b := &interoptest.MockBoundary{}
	b.On("Version").Return(interop.Version + 1)

	bridge, err := script.New(b)
	assert.Nil(t, bridge)
	assert.True(t, errors.Is(err, interop.ErrVersionMismatch))
}

func TestBareEntityHasNoComponents(t *testing.T) {
	bridge, b := newBridge(t)
	id := interop.EntityID(11)
	b.On("HasComponent", id, mock.AnythingOfType("interop.Kind")).Return(false)

	e := bridge.Entity(id)
	for _, kind := range builtinKinds {
		assert.False(t, e.HasComponent(kind), kind.String())
		c, ok := e.GetComponent(kind)
		assert.False(t, ok, kind.String())
		assert.Nil(t, c)
	}

	_, ok := script.Get[script.RigidBody2D](e)
	assert.False(t, ok)
	assert.False(t, script.Has[script.Text](e))

	b.AssertNotCalled(t, "TransformPosition", mock.Anything)
}

func TestGetComponentMatchesHasComponent(t *testing.T) {
	bridge, b := newBridge(t)
	id := interop.EntityID(12)
	b.On("HasComponent", id, interop.KindTransform).Return(true)
	b.On("HasComponent", id, interop.KindRigidBody2D).Return(true)
	b.On("HasComponent", id, interop.KindSpriteRenderer).Return(false)
	b.On("HasComponent", id, interop.KindText).Return(false)

	e := bridge.Entity(id)
	for _, kind := range builtinKinds {
		c, ok := e.GetComponent(kind)
		assert.Equal(t, e.HasComponent(kind), ok, kind.String())
		if ok {
			assert.Equal(t, kind, c.Kind())
			assert.True(t, c.Entity().Equal(e))
		}
	}

	rb, ok := script.Get[script.RigidBody2D](e)
	require.True(t, ok)
	assert.Equal(t, id, rb.Entity().ID())
}

func TestNilEntity(t *testing.T) {
	bridge, b := newBridge(t)

	var zero script.Entity
	assert.True(t, zero.IsNil())
	assert.False(t, zero.HasComponent(interop.KindTransform))
	_, ok := zero.GetComponent(interop.KindTransform)
	assert.False(t, ok)
	assert.Equal(t, "Entity(nil)", zero.String())

	sentinel := bridge.Entity(interop.NoEntity)
	assert.True(t, sentinel.IsNil())
	assert.False(t, sentinel.HasComponent(interop.KindTransform))
	_, ok = script.As[*struct{ script.Entity }](sentinel)
	assert.False(t, ok)
	b.AssertNotCalled(t, "HasComponent", mock.Anything, mock.Anything)

	assert.PanicsWithError(t, "TransformPosition(entity 0): entity is not live", func() {
		zero.Position()
	})
}

func TestFindEntityByName(t *testing.T) {
	bridge, b := newBridge(t)
	b.On("FindEntityByName", "Player").Return(interop.EntityID(5))
	b.On("FindEntityByName", "Nobody").Return(interop.NoEntity)
	b.On("HasComponent", interop.EntityID(5), interop.KindTransform).Return(true)

	found := bridge.FindEntityByName("Player")
	assert.False(t, found.IsNil())
	assert.Equal(t, interop.EntityID(5), found.ID())
	assert.True(t, script.Has[script.Transform](found))

	missing := found.FindEntityByName("Nobody")
	assert.True(t, missing.IsNil())
	assert.False(t, missing.HasComponent(interop.KindTransform))
}

func TestPositionRoundTrip(t *testing.T) {
	bridge, b := newBridge(t)
	id := interop.EntityID(3)
	want := vmath.Vec3(1, 2, 3)

	b.On("SetTransformPosition", id, want).Return().Once()
	b.On("TransformPosition", id).Return(want)

	e := bridge.Entity(id)
	e.SetPosition(want)
	assert.Equal(t, want, e.Position())

	b.AssertExpectations(t)
}

func TestEntityEquality(t *testing.T) {
	bridge, _ := newBridge(t)
	a := bridge.Entity(7)
	b := bridge.Entity(7)
	c := bridge.Entity(8)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "Entity(7)", a.String())
}

type player struct {
	script.Entity
	Speed float32
}

type camera struct {
	script.Entity
	DistanceFromPlayer float32
}

func TestAsNarrowsBoundBehavior(t *testing.T) {
	bridge, b := newBridge(t)
	p := &player{Speed: 2}
	c := &camera{DistanceFromPlayer: 15}

	b.On("ScriptInstance", interop.EntityID(1)).Return(interop.Instance{Class: "Player", Value: p}, true)
	b.On("ScriptInstance", interop.EntityID(2)).Return(interop.Instance{Class: "Camera", Value: c}, true)
	b.On("ScriptInstance", interop.EntityID(3)).Return(interop.Instance{}, false)

	got, ok := script.As[*player](bridge.Entity(1))
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = script.As[*player](bridge.Entity(2))
	assert.False(t, ok, "camera must not narrow to player")

	_, ok = script.As[*player](bridge.Entity(3))
	assert.False(t, ok)

	class, ok := bridge.Entity(2).ScriptClass()
	assert.True(t, ok)
	assert.Equal(t, "Camera", class)

	_, ok = bridge.Entity(3).ScriptClass()
	assert.False(t, ok)

	updater, ok := script.As[script.Behavior](bridge.Entity(1))
	assert.True(t, ok)
	assert.NotNil(t, updater)
}

func TestBindThroughEmbedding(t *testing.T) {
	bridge, _ := newBridge(t)

	var behavior script.Behavior = &player{}
	behavior.Bind(bridge.Entity(21))

	assert.Equal(t, interop.EntityID(21), behavior.(*player).ID())
}

func TestFrameCache(t *testing.T) {
	bridge, b := newBridge(t, script.WithFrameCache())
	id := interop.EntityID(4)
	b.On("HasComponent", id, interop.KindSpriteRenderer).Return(true)

	e := bridge.Entity(id)
	for range 3 {
		assert.True(t, e.HasComponent(interop.KindSpriteRenderer))
	}
	b.AssertNumberOfCalls(t, "HasComponent", 1)

	hits, misses := bridge.CacheStats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)

	bridge.AdvanceFrame()
	assert.True(t, e.HasComponent(interop.KindSpriteRenderer))
	b.AssertNumberOfCalls(t, "HasComponent", 2)
}

func TestNoCacheByDefault(t *testing.T) {
	bridge, b := newBridge(t)
	id := interop.EntityID(4)
	b.On("HasComponent", id, interop.KindText).Return(false)

	e := bridge.Entity(id)
	e.HasComponent(interop.KindText)
	e.HasComponent(interop.KindText)
	b.AssertNumberOfCalls(t, "HasComponent", 2)

	hits, misses := bridge.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

type health struct {
	entity script.Entity
}

const kindHealth = interop.KindUser + 1

func (health) Kind() interop.Kind       { return kindHealth }
func (h health) Entity() script.Entity { return h.entity }

func TestRegisterCapability(t *testing.T) {
	bridge, b := newBridge(t)
	id := interop.EntityID(9)
	b.On("HasComponent", id, kindHealth).Return(true)

	e := bridge.Entity(id)
	_, ok := e.GetComponent(kindHealth)
	assert.False(t, ok, "present kind without a constructor resolves to absence")

	bridge.RegisterCapability(kindHealth, func(e script.Entity) script.Component {
		return health{entity: e}
	})

	h, ok := script.Get[health](e)
	require.True(t, ok)
	assert.Equal(t, id, h.Entity().ID())

	assert.Equal(t, append(append([]interop.Kind{}, builtinKinds...), kindHealth), bridge.Kinds())
}
