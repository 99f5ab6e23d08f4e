package script

// Behavior is user code bound to one entity. Embedding Entity satisfies it:
//
//	type Player struct {
//		script.Entity
//		Speed float32
//	}
//
// The runtime creates the behavior, binds its handle, applies stored field values and
// then drives the optional hooks below. Behavior code never calls the hooks itself.
type Behavior interface {
	Bind(e Entity)
}

// Creator is implemented by behaviors that need a one-time setup after binding.
// OnCreate runs exactly once per behavior, before its first OnUpdate.
type Creator interface {
	OnCreate()
}

// Updater is implemented by behaviors that run every frame. ts is the frame step in
// seconds.
type Updater interface {
	OnUpdate(ts float32)
}
