package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/scene"
	"github.com/plus3/scriptglue/vmath"
)

type Report struct {
	Project   string
	Scene     string
	Frames    int
	DeltaTime float32

	FailedFrames int
	TotalTime    time.Duration
	FrameTime    Stats
	Scheduler    *scene.SchedulerStats
	Entities     []EntityLine

	FrameCache  bool
	CacheHits   uint64
	CacheMisses uint64

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type EntityLine struct {
	ID       uint64
	Name     string
	Class    string
	Position vmath.Vector3
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func collectEntities(s *scene.Scene) []EntityLine {
	var lines []EntityLine
	for id := range s.Entities() {
		line := EntityLine{ID: uint64(id)}
		if tag := scene.Component[scene.TagComponent](s, id); tag != nil {
			line.Name = tag.Tag
		}
		if sc := scene.Component[scene.ScriptComponent](s, id); sc != nil {
			line.Class = sc.ClassName
		}
		if tc := scene.Component[scene.TransformComponent](s, id); tc != nil {
			line.Position = tc.Translation
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Sandbox Run Report

## Configuration
- **Project:** {{.Project}}
- **Scene:** {{.Scene}}
- **Frames:** {{.Frames}} at {{printf "%.4f" .DeltaTime}}s
- **Frame Cache:** {{.FrameCache}}

## Timing
- **Total Time:** {{.TotalTime}}
- **Failed Frames:** {{.FailedFrames}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
{{- if .FrameCache}}
- **Resolution Cache:** {{.CacheHits}} hits, {{.CacheMisses}} misses
{{- end}}

## Systems
{{- range .Scheduler.Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Entities
{{- range .Entities}}
- {{.Name}} ({{.ID}}){{if .Class}} [{{.Class}}]{{end}}: {{.Position}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return errors.Wrap(err, "parse report template")
	}
	return tmpl.Execute(w, r)
}
