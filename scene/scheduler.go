package scene

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
)

// ErrFrameFailed is matched by every error returned for a frame aborted by a contract
// violation.
var ErrFrameFailed = errors.New("frame failed")

// FrameError reports which frame and system broke the call contract.
type FrameError struct {
	Frame  uint64
	System string
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d failed in %s: %v", e.Frame, e.System, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

func (e *FrameError) Is(target error) bool {
	return target == ErrFrameFailed
}

// SchedulerStats summarizes scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	FailedFrames    uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats summarizes one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemEntry struct {
	system System
	name   string
	count  int64
	min    time.Duration
	max    time.Duration
	total  time.Duration
	last   time.Duration
}

// binder is implemented by Query and Singleton fields.
type binder interface {
	bind(storage *Storage)
	refresh()
}

// Scheduler runs registered systems in registration order, one frame at a time.
type Scheduler struct {
	storage *Storage
	systems []*systemEntry
	binders []binder
	current *Frame
	frames  uint64
	failed  uint64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register appends system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)

	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.systems = append(s.systems, &systemEntry{
		system: system,
		name:   t.Name(),
		min:    time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanAddr() || !field.Addr().CanInterface() {
			continue
		}
		if b, ok := field.Addr().Interface().(binder); ok {
			b.bind(s.storage)
			s.binders = append(s.binders, b)
		}
	}
}

// Current returns the frame being executed, or nil between frames.
func (s *Scheduler) Current() *Frame {
	return s.current
}

// Once runs every system for one frame and then applies the frame's commands.
//
// If a system panics with a contract violation, the frame stops, its pending commands
// are discarded and a *FrameError is returned. Violations raised by deferred functions
// while the commands apply also fail the frame, but every command is still applied.
// Any other panic propagates.
func (s *Scheduler) Once(dt float32) (err error) {
	s.frames++
	frame := newFrame(s.frames, dt, s.storage)
	s.current = frame

	var running string
	defer func() {
		s.current = nil
		r := recover()
		if r == nil {
			return
		}
		v, ok := interop.RecoveredViolation(r)
		if !ok {
			panic(r)
		}
		frame.Commands.Discard()
		s.failed++
		err = &FrameError{Frame: frame.Number, System: running, Err: v}
	}()

	for _, b := range s.binders {
		b.refresh()
	}

	for _, entry := range s.systems {
		running = entry.name
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}
	running = "commands"

	if ferr := frame.Commands.Flush(s.storage); ferr != nil {
		s.failed++
		return &FrameError{Frame: frame.Number, System: running, Err: ferr}
	}
	return nil
}

func (e *systemEntry) record(d time.Duration) {
	e.count++
	e.last = d
	e.total += d
	e.min = min(e.min, d)
	e.max = max(e.max, d)
}

// Run executes frames at the given interval until ctx is done or a frame fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// Stats returns execution statistics.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		Frames:       s.frames,
		FailedFrames: s.failed,
		Systems:      make([]SystemStats, len(s.systems)),
	}

	for i, e := range s.systems {
		var avg time.Duration
		minDuration := e.min
		if e.count > 0 {
			avg = e.total / time.Duration(e.count)
		} else {
			minDuration = 0
		}
		stats.Systems[i] = SystemStats{
			Name:           e.name,
			ExecutionCount: e.count,
			MinDuration:    minDuration,
			MaxDuration:    e.max,
			AvgDuration:    avg,
			LastDuration:   e.last,
			TotalDuration:  e.total,
		}
		stats.TotalExecutions += e.count
	}
	return stats
}
