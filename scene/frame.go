package scene

// System is one step of a frame. Systems may declare Query and Singleton fields; the
// Scheduler binds them on Register.
type System interface {
	Execute(frame *Frame)
}

// Frame is what every system sees while a frame runs.
type Frame struct {
	Number    uint64
	DeltaTime float32
	Commands  *Commands
	Storage   *Storage
}

func newFrame(number uint64, dt float32, storage *Storage) *Frame {
	return &Frame{
		Number:    number,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
