// Package script is the behavior-facing side of the call boundary.
//
// Behavior code never holds component data. It holds Entity handles and thin views
// (Transform, RigidBody2D, SpriteRenderer, Text) whose every method crosses the
// boundary, so a read always reflects the runtime's current state and a write takes
// effect immediately.
//
// Capability resolution maps a Kind to a view constructor. The four built-in kinds are
// registered by New; additional kinds can be added with RegisterCapability without
// touching Entity.
package script

import (
	"maps"
	"slices"

	"github.com/plus3/scriptglue/interop"
	"go.uber.org/zap"
)

// Constructor builds the view for one capability kind over an entity handle.
type Constructor func(e Entity) Component

// Bridge binds behavior code to a runtime Boundary.
type Bridge struct {
	boundary interop.Boundary
	ctors    map[interop.Kind]Constructor
	cache    *resolutionCache
	logger   *zap.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithFrameCache memoizes capability presence answers until the next AdvanceFrame.
// Only safe when the runtime defers structural changes to frame boundaries.
func WithFrameCache() Option {
	return func(b *Bridge) {
		b.cache = newResolutionCache()
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a Bridge over boundary. It fails if the boundary implements a different
// call surface version.
func New(boundary interop.Boundary, opts ...Option) (*Bridge, error) {
	if err := interop.CheckVersion(boundary); err != nil {
		return nil, err
	}

	b := &Bridge{
		boundary: boundary,
		ctors:    make(map[interop.Kind]Constructor),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.RegisterCapability(interop.KindTransform, func(e Entity) Component { return Transform{entity: e} })
	b.RegisterCapability(interop.KindRigidBody2D, func(e Entity) Component { return RigidBody2D{entity: e} })
	b.RegisterCapability(interop.KindSpriteRenderer, func(e Entity) Component { return SpriteRenderer{entity: e} })
	b.RegisterCapability(interop.KindText, func(e Entity) Component { return Text{entity: e} })

	return b, nil
}

// Boundary returns the call surface the bridge forwards to.
func (b *Bridge) Boundary() interop.Boundary {
	return b.boundary
}

// RegisterCapability installs or replaces the view constructor for kind.
func (b *Bridge) RegisterCapability(kind interop.Kind, ctor Constructor) {
	if ctor == nil {
		panic("nil constructor for capability " + kind.String())
	}
	b.ctors[kind] = ctor
}

// Kinds lists every kind with a registered constructor in ascending order.
func (b *Bridge) Kinds() []interop.Kind {
	return slices.Sorted(maps.Keys(b.ctors))
}

// Entity returns the handle for id. The sentinel id yields a nil handle.
func (b *Bridge) Entity(id interop.EntityID) Entity {
	return Entity{id: id, bridge: b}
}

// FindEntityByName returns the first live entity with the given name, or a nil handle.
func (b *Bridge) FindEntityByName(name string) Entity {
	return b.Entity(b.boundary.FindEntityByName(name))
}

// AdvanceFrame drops every memoized answer. The runtime calls it at each frame boundary
// and whenever an entity gains or loses a capability.
func (b *Bridge) AdvanceFrame() {
	if b.cache != nil {
		b.cache.reset()
	}
}

// CacheStats reports resolution cache hits and misses since the bridge was created.
// Both are zero when the cache is disabled.
func (b *Bridge) CacheStats() (hits, misses uint64) {
	if b.cache == nil {
		return 0, 0
	}
	return b.cache.hits, b.cache.misses
}

func (b *Bridge) hasComponent(id interop.EntityID, kind interop.Kind) bool {
	if b.cache == nil {
		return b.boundary.HasComponent(id, kind)
	}
	if has, ok := b.cache.lookup(id, kind); ok {
		return has
	}
	has := b.boundary.HasComponent(id, kind)
	b.cache.store(id, kind, has)
	return has
}

func (b *Bridge) component(e Entity, kind interop.Kind) (Component, bool) {
	if !b.hasComponent(e.id, kind) {
		return nil, false
	}
	ctor, ok := b.ctors[kind]
	if !ok {
		b.logger.Debug("no view registered for capability",
			zap.Uint64("entity", uint64(e.id)), zap.Stringer("kind", kind))
		return nil, false
	}
	return ctor(e), true
}
