// Package project loads and saves the YAML project file that names the start scene
// and the runtime settings used to run it.
package project

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/scene"
	"github.com/plus3/scriptglue/script"
	"github.com/plus3/scriptglue/vmath"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultName           = "Untitled"
	DefaultAssetDirectory = "assets"
	DefaultTickRate       = 60
)

// ErrInvalidProject is returned for project files that parse but cannot be used.
var ErrInvalidProject = errors.New("invalid project")

// Config is the content of a project file.
type Config struct {
	Name           string  `yaml:"Name"`
	StartScene     string  `yaml:"StartScene"`
	AssetDirectory string  `yaml:"AssetDirectory"`
	Runtime        Runtime `yaml:"Runtime"`
}

// Runtime holds the settings applied to a running scene.
type Runtime struct {
	// TickRate is the number of frames per simulated second.
	TickRate   int           `yaml:"TickRate"`
	Gravity    []float32     `yaml:"Gravity,flow"`
	LogLevel   zapcore.Level `yaml:"LogLevel"`
	FrameCache bool          `yaml:"FrameCache"`
	TraceCalls bool          `yaml:"TraceCalls"`
}

type document struct {
	Project Config `yaml:"Project"`
}

// Project is a loaded project file.
type Project struct {
	Config
	path string
}

// New returns a project with default settings that is not backed by a file yet.
func New(name string) *Project {
	p := &Project{Config: Config{Name: name}}
	p.applyDefaults()
	return p
}

// Load reads the project file at path and fills in defaults for missing settings.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read project")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse project %s", path)
	}

	p := &Project{Config: doc.Project, path: path}
	p.applyDefaults()
	if err := p.validate(); err != nil {
		return nil, errors.Wrapf(err, "project %s", path)
	}
	return p, nil
}

func (p *Project) applyDefaults() {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.AssetDirectory == "" {
		p.AssetDirectory = DefaultAssetDirectory
	}
	if p.Runtime.TickRate <= 0 {
		p.Runtime.TickRate = DefaultTickRate
	}
	if len(p.Runtime.Gravity) == 0 {
		g := scene.DefaultPhysicsSettings().Gravity
		p.Runtime.Gravity = []float32{g.X, g.Y}
	}
}

func (p *Project) validate() error {
	if n := len(p.Runtime.Gravity); n != 2 {
		return errors.Wrapf(ErrInvalidProject, "gravity needs 2 components, got %d", n)
	}
	return nil
}

// Save writes the project to path and remembers path for ScenePath.
func (p *Project) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Project: p.Config}); err != nil {
		return errors.Wrap(err, "encode project")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "encode project")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write project")
	}
	p.path = path
	return nil
}

// Path is the file the project was loaded from or last saved to.
func (p *Project) Path() string {
	return p.path
}

// Dir is the directory relative paths in the project resolve against.
func (p *Project) Dir() string {
	if p.path == "" {
		return "."
	}
	return filepath.Dir(p.path)
}

// ScenePath resolves StartScene against the project directory. It returns "" when no
// start scene is configured.
func (p *Project) ScenePath() string {
	return p.resolve(p.StartScene)
}

// AssetPath resolves rel inside the asset directory.
func (p *Project) AssetPath(rel string) string {
	return filepath.Join(p.resolve(p.AssetDirectory), rel)
}

func (p *Project) resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Dir(), rel)
}

// GravityVector returns the configured gravity.
func (r Runtime) GravityVector() vmath.Vector2 {
	if len(r.Gravity) != 2 {
		return scene.DefaultPhysicsSettings().Gravity
	}
	return vmath.Vec2(r.Gravity[0], r.Gravity[1])
}

// DeltaTime is the length of one frame in seconds.
func (r Runtime) DeltaTime() float32 {
	if r.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1 / float32(r.TickRate)
}

// SceneOptions translates the runtime settings into scene options.
func (p *Project) SceneOptions() []scene.Option {
	physics := scene.DefaultPhysicsSettings()
	physics.Gravity = p.Runtime.GravityVector()

	opts := []scene.Option{scene.WithPhysics(physics)}
	if p.Runtime.FrameCache {
		opts = append(opts, scene.WithBridgeOptions(script.WithFrameCache()))
	}
	if p.Runtime.TraceCalls {
		opts = append(opts, scene.WithCallTrace())
	}
	return opts
}

// OpenScene creates a scene configured by the project and fills it from the start
// scene file. The scene is not started.
func (p *Project) OpenScene(logger *zap.Logger, opts ...scene.Option) (*scene.Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	all := append(p.SceneOptions(), scene.WithLogger(logger))
	s := scene.New(append(all, opts...)...)

	path := p.ScenePath()
	if path == "" {
		s.SetName(p.Name)
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open start scene")
	}
	defer f.Close()

	if err := scene.NewSerializer(s).Deserialize(f); err != nil {
		return nil, errors.Wrapf(err, "load start scene %s", path)
	}
	logger.Info("scene loaded", zap.String("project", p.Name), zap.String("path", path), zap.Int("entities", s.Len()))
	return s, nil
}
