// Package scene is the native runtime behind the call boundary: entities stored by
// archetype, a frame scheduler, a small 2D rigid body integrator, the behavior engine
// and a YAML scene format.
//
// A Scene is single threaded. Behavior hooks run inside frames; any structural change
// they request (creating or destroying entities, adding or removing components) is
// deferred to the end of the frame so every handle stays valid for the whole hook.
package scene

import (
	"encoding/binary"
	"iter"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrNotRunning is returned when a frame is requested before OnRuntimeStart.
	ErrNotRunning = errors.New("scene runtime is not running")

	// ErrAlreadyRunning is returned by OnRuntimeStart on a running scene.
	ErrAlreadyRunning = errors.New("scene runtime is already running")
)

// Scene owns a set of entities and runs their behaviors.
type Scene struct {
	name      string
	registry  *ComponentRegistry
	storage   *Storage
	scheduler *Scheduler
	engine    *ScriptEngine
	kinds     map[interop.Kind]reflect.Type
	logger    *zap.Logger

	physics    PhysicsSettings
	bridgeOpts []script.Option
	traceCalls bool

	bridge  *script.Bridge
	running bool
	frames  uint64
}

// Option configures a Scene.
type Option func(*Scene)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
	}
}

// WithEngine shares a script engine, and therefore its registered classes, with the
// scene.
func WithEngine(engine *ScriptEngine) Option {
	return func(s *Scene) {
		s.engine = engine
	}
}

func WithPhysics(settings PhysicsSettings) Option {
	return func(s *Scene) {
		s.physics = settings
	}
}

// WithBridgeOptions passes options to the bridge created by OnRuntimeStart.
func WithBridgeOptions(opts ...script.Option) Option {
	return func(s *Scene) {
		s.bridgeOpts = append(s.bridgeOpts, opts...)
	}
}

// WithCallTrace logs every boundary call at debug level.
func WithCallTrace() Option {
	return func(s *Scene) {
		s.traceCalls = true
	}
}

// WithComponents registers additional component types.
func WithComponents(register func(*ComponentRegistry)) Option {
	return func(s *Scene) {
		register(s.registry)
	}
}

func New(opts ...Option) *Scene {
	s := &Scene{
		name:     "Untitled",
		registry: NewComponentRegistry(),
		kinds:    builtinKinds(),
		logger:   zap.NewNop(),
		physics:  DefaultPhysicsSettings(),
	}
	RegisterBuiltinComponents(s.registry)
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = NewScriptEngine(s.logger)
	}

	s.storage = NewStorage(s.registry)
	s.storage.OnChange(s.dropResolutions)
	s.storage.AddSingleton(s.physics)
	s.scheduler = NewScheduler(s.storage)
	s.scheduler.Register(&ScriptSystem{engine: s.engine})
	s.scheduler.Register(&PhysicsSystem{})
	return s
}

func (s *Scene) Name() string           { return s.name }
func (s *Scene) SetName(name string)    { s.name = name }
func (s *Scene) Storage() *Storage      { return s.storage }
func (s *Scene) Scheduler() *Scheduler  { return s.scheduler }
func (s *Scene) Engine() *ScriptEngine  { return s.engine }
func (s *Scene) Running() bool          { return s.running }
func (s *Scene) Frame() uint64          { return s.frames }
func (s *Scene) Bridge() *script.Bridge { return s.bridge }

// AddSystem appends a system that runs after the built-in script and physics steps.
func (s *Scene) AddSystem(system System) {
	s.scheduler.Register(system)
}

// RegisterKind exposes a registered component type to behaviors as kind.
func (s *Scene) RegisterKind(kind interop.Kind, t reflect.Type) {
	if !s.registry.Registered(t) {
		panic("component type " + t.String() + " not registered")
	}
	s.kinds[kind] = t
}

func (s *Scene) kindType(kind interop.Kind) (reflect.Type, bool) {
	t, ok := s.kinds[kind]
	return t, ok
}

// NewEntityID returns a random id that is neither the sentinel nor in use.
func (s *Scene) NewEntityID() interop.EntityID {
	for {
		u := uuid.New()
		id := interop.EntityID(binary.BigEndian.Uint64(u[:8]))
		if id != interop.NoEntity && !s.storage.Exists(id) {
			return id
		}
	}
}

// CreateEntity creates an entity with a fresh id, a tag and an identity transform.
func (s *Scene) CreateEntity(name string) interop.EntityID {
	return s.CreateEntityWithUUID(s.NewEntityID(), name)
}

// CreateEntityWithUUID is CreateEntity with a caller-chosen id. The sentinel id is
// replaced by a fresh one. Inside a frame the entity becomes live when the frame ends.
func (s *Scene) CreateEntityWithUUID(id interop.EntityID, name string) interop.EntityID {
	if id == interop.NoEntity {
		id = s.NewEntityID()
	}
	if name == "" {
		name = "Entity"
	}
	components := []any{
		IDComponent{ID: id},
		TagComponent{Tag: name},
		TransformComponent{Scale: vmath.Vector3One},
	}
	if frame := s.scheduler.Current(); frame != nil {
		frame.Commands.Spawn(id, components...)
		return id
	}
	s.storage.Spawn(id, components...)
	return id
}

// DestroyEntity removes an entity and its behavior. Inside a frame the entity stays
// live until the frame ends.
func (s *Scene) DestroyEntity(id interop.EntityID) {
	if frame := s.scheduler.Current(); frame != nil {
		frame.Commands.Delete(id)
		frame.Commands.Defer(func() { s.engine.OnDestroyEntity(id) })
		return
	}
	if s.storage.Delete(id) {
		s.engine.OnDestroyEntity(id)
	}
}

// Exists reports whether id names a live entity.
func (s *Scene) Exists(id interop.EntityID) bool {
	return s.storage.Exists(id)
}

// Len is the number of live entities.
func (s *Scene) Len() int {
	return s.storage.Len()
}

// Entities yields live entity ids in creation order.
func (s *Scene) Entities() iter.Seq[interop.EntityID] {
	return s.storage.Entities()
}

// AddComponent attaches component to id, replacing one of the same type. Adding a
// ScriptComponent to a running scene instantiates its behavior.
func (s *Scene) AddComponent(id interop.EntityID, component any) {
	_, isScript := component.(ScriptComponent)
	if p, ok := component.(*ScriptComponent); ok && p != nil {
		isScript = true
	}

	if frame := s.scheduler.Current(); frame != nil {
		frame.Commands.AddComponent(id, component)
		if isScript {
			frame.Commands.Defer(func() { s.instantiate(id) })
		}
		return
	}
	if s.storage.AddComponent(id, component) && isScript {
		s.instantiate(id)
	}
}

// RemoveComponent detaches the component of type t from id.
func (s *Scene) RemoveComponent(id interop.EntityID, t reflect.Type) {
	isScript := t == reflect.TypeFor[ScriptComponent]()
	if frame := s.scheduler.Current(); frame != nil {
		frame.Commands.RemoveComponent(id, t)
		if isScript {
			frame.Commands.Defer(func() { s.engine.OnDestroyEntity(id) })
		}
		return
	}
	if s.storage.RemoveComponent(id, t) && isScript {
		s.engine.OnDestroyEntity(id)
	}
}

// Remove detaches the T component of id.
func Remove[T any](s *Scene, id interop.EntityID) {
	s.RemoveComponent(id, reflect.TypeFor[T]())
}

func (s *Scene) GetComponent(id interop.EntityID, t reflect.Type) any {
	return s.storage.GetComponent(id, t)
}

func (s *Scene) HasComponent(id interop.EntityID, t reflect.Type) bool {
	return s.storage.HasComponent(id, t)
}

// Component returns the T component of id, or nil.
func Component[T any](s *Scene, id interop.EntityID) *T {
	return Read[T](s.storage, id)
}

// FindEntityByName returns the first live entity, in creation order, whose tag equals
// name exactly. It returns NoEntity when there is none.
func (s *Scene) FindEntityByName(name string) interop.EntityID {
	for id := range s.storage.Entities() {
		if tag := Read[TagComponent](s.storage, id); tag != nil && tag.Tag == name {
			return id
		}
	}
	return interop.NoEntity
}

// Boundary returns the call surface behaviors of this scene talk to.
func (s *Scene) Boundary() interop.Boundary {
	var b interop.Boundary = NewGlue(s)
	if s.traceCalls {
		b = interop.Trace(b, s.logger)
	}
	return b
}

// OnRuntimeStart binds the behavior bridge and runs OnCreate for every scripted
// entity in creation order. A contract violation in one OnCreate does not keep the
// others from running; the runtime is started either way and the violations are
// returned as *FrameError values matching ErrFrameFailed.
func (s *Scene) OnRuntimeStart() error {
	if s.running {
		return ErrAlreadyRunning
	}
	bridge, err := script.New(s.Boundary(), append([]script.Option{script.WithLogger(s.logger)}, s.bridgeOpts...)...)
	if err != nil {
		return errors.Wrap(err, "start runtime")
	}
	s.bridge = bridge
	s.engine.OnRuntimeStart(bridge)
	s.running = true
	s.logger.Info("runtime started", zap.String("scene", s.name), zap.Int("entities", s.storage.Len()))

	var errs error
	for _, id := range slices.Collect(s.storage.Entities()) {
		errs = multierr.Append(errs, s.guard("OnRuntimeStart", func() { s.instantiate(id) }))
	}
	return errs
}

// OnRuntimeStop releases every behavior instance.
func (s *Scene) OnRuntimeStop() {
	if !s.running {
		return
	}
	s.engine.OnRuntimeStop()
	s.bridge = nil
	s.running = false
	s.logger.Info("runtime stopped", zap.String("scene", s.name), zap.Uint64("frames", s.frames))
}

// OnUpdateRuntime advances the scene by one frame of ts seconds: behaviors update,
// bodies integrate, then deferred changes apply. A contract violation fails the frame
// and the error matches ErrFrameFailed.
func (s *Scene) OnUpdateRuntime(ts float32) error {
	if !s.running {
		return ErrNotRunning
	}
	s.bridge.AdvanceFrame()
	err := s.scheduler.Once(ts)
	s.bridge.AdvanceFrame()
	s.frames++
	if err != nil {
		s.logger.Error("frame failed", zap.Uint64("frame", s.frames), zap.Error(err))
	}
	return err
}

// dropResolutions clears bridge answers memoized before a structural change.
func (s *Scene) dropResolutions() {
	if s.bridge != nil {
		s.bridge.AdvanceFrame()
	}
}

func (s *Scene) instantiate(id interop.EntityID) {
	sc := Read[ScriptComponent](s.storage, id)
	if sc == nil || !s.running {
		return
	}
	s.engine.OnCreateEntity(id, sc.ClassName)
}

// guard runs fn and turns a contract violation into an error.
func (s *Scene) guard(stage string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := interop.RecoveredViolation(r)
		if !ok {
			panic(r)
		}
		err = &FrameError{Frame: s.frames, System: stage, Err: v}
	}()
	fn()
	return nil
}

// ScriptSystem runs OnUpdate for every scripted entity.
type ScriptSystem struct {
	Scripts Query[struct {
		ID interop.EntityID
		*ScriptComponent
	}]
	engine *ScriptEngine
}

func (s *ScriptSystem) Execute(frame *Frame) {
	for id := range s.Scripts.Iter() {
		s.engine.OnUpdateEntity(id, frame.DeltaTime)
	}
}
