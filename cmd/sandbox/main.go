// Command sandbox loads a project, runs its start scene headless for a fixed number of
// frames and prints a report.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/project"
	"github.com/plus3/scriptglue/scene"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	project  string
	frames   int
	dt       float64
	logLevel string
}

func main() {
	var opts options
	flag.StringVar(&opts.project, "project", "SandboxProject/Sandbox.hproj", "Path to the project file.")
	flag.IntVar(&opts.frames, "frames", 300, "Number of frames to simulate.")
	flag.Float64Var(&opts.dt, "dt", 0, "Frame step in seconds. 0 uses the project tick rate.")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error).")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func run(opts options, w io.Writer) error {
	p, err := project.Load(opts.project)
	if err != nil {
		return err
	}

	level := p.Runtime.LogLevel
	if opts.logLevel != "" {
		if level, err = zapcore.ParseLevel(opts.logLevel); err != nil {
			return errors.Wrap(err, "log level")
		}
	}
	logger, err := newLogger(level)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	defer func() { _ = logger.Sync() }()

	engine := scene.NewScriptEngine(logger)
	registerBehaviors(engine)

	s, err := p.OpenScene(logger, scene.WithEngine(engine))
	if err != nil {
		return err
	}

	dt := p.Runtime.DeltaTime()
	if opts.dt > 0 {
		dt = float32(opts.dt)
	}

	report := &Report{
		Project:    p.Name,
		Scene:      s.Name(),
		Frames:     opts.frames,
		DeltaTime:  dt,
		FrameCache: p.Runtime.FrameCache,
		FrameTime:  Stats{Samples: make([]time.Duration, 0, opts.frames)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	if err := s.OnRuntimeStart(); err != nil {
		return err
	}

	logger.Info("running", zap.String("scene", s.Name()), zap.Int("frames", opts.frames), zap.Float32("dt", dt))
	start := time.Now()
	for range opts.frames {
		frameStart := time.Now()
		if err := s.OnUpdateRuntime(dt); err != nil {
			report.FailedFrames++
		}
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
	}
	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	report.Scheduler = s.Scheduler().Stats()
	report.CacheHits, report.CacheMisses = s.Bridge().CacheStats()
	report.Entities = collectEntities(s)
	runtime.ReadMemStats(&report.MemStatsEnd)

	s.OnRuntimeStop()

	return report.Generate(w)
}
