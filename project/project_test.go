package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/project"
	"github.com/plus3/scriptglue/scene"
	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Game.hproj")
	writeFile(t, path, "Project:\n  StartScene: scenes/Main.yaml\n")

	p, err := project.Load(path)
	require.NoError(t, err)

	assert.Equal(t, project.DefaultName, p.Name)
	assert.Equal(t, project.DefaultAssetDirectory, p.AssetDirectory)
	assert.Equal(t, project.DefaultTickRate, p.Runtime.TickRate)
	assert.Equal(t, zapcore.InfoLevel, p.Runtime.LogLevel)
	assert.Equal(t, vmath.Vec2(0, -9.8), p.Runtime.GravityVector())
	assert.InDelta(t, 1.0/60, p.Runtime.DeltaTime(), 1e-7)

	assert.Equal(t, filepath.Join(dir, "scenes", "Main.yaml"), p.ScenePath())
	assert.Equal(t, filepath.Join(dir, "assets", "icon.png"), p.AssetPath("icon.png"))
}

func TestLoadRuntimeSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Game.hproj")
	writeFile(t, path, `Project:
  Name: Sandbox
  AssetDirectory: content
  Runtime:
    TickRate: 30
    Gravity: [0, -1.5]
    LogLevel: debug
    FrameCache: true
    TraceCalls: true
`)

	p, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sandbox", p.Name)
	assert.Equal(t, 30, p.Runtime.TickRate)
	assert.Equal(t, zapcore.DebugLevel, p.Runtime.LogLevel)
	assert.Equal(t, vmath.Vec2(0, -1.5), p.Runtime.GravityVector())
	assert.True(t, p.Runtime.FrameCache)
	assert.True(t, p.Runtime.TraceCalls)
	assert.Empty(t, p.ScenePath())
	assert.Len(t, p.SceneOptions(), 3)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := project.Load(filepath.Join(dir, "missing.hproj"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.hproj")
	writeFile(t, bad, "Project:\n  Runtime:\n    Gravity: [1, 2, 3]\n")
	_, err = project.Load(bad)
	assert.True(t, errors.Is(err, project.ErrInvalidProject))

	level := filepath.Join(dir, "level.hproj")
	writeFile(t, level, "Project:\n  Runtime:\n    LogLevel: chatty\n")
	_, err = project.Load(level)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.hproj")
	p := project.New("Roundtrip")
	p.StartScene = "Main.yaml"
	p.Runtime.LogLevel = zapcore.WarnLevel
	p.Runtime.TraceCalls = true

	require.NoError(t, p.Save(path))
	assert.Equal(t, path, p.Path())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name: Roundtrip")
	assert.Contains(t, string(data), "LogLevel: warn")
	assert.Contains(t, string(data), "Gravity: [0, -9.8]")

	loaded, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.Config, loaded.Config)
}

func TestOpenScene(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scenes", "Main.yaml"), `Scene: Main
Entities:
  - Entity: 11
    TagComponent:
      Tag: Player
    TransformComponent:
      Position: [1, 2, 0]
      Rotation: [0, 0, 0]
      Scale: [1, 1, 1]
`)
	path := filepath.Join(dir, "Game.hproj")
	writeFile(t, path, "Project:\n  Name: Game\n  StartScene: scenes/Main.yaml\n")

	p, err := project.Load(path)
	require.NoError(t, err)
	s, err := p.OpenScene(nil)
	require.NoError(t, err)

	assert.Equal(t, "Main", s.Name())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, vmath.Vec3(1, 2, 0), scene.Component[scene.TransformComponent](s, 11).Translation)
	assert.False(t, s.Running())

	p.StartScene = "scenes/Nope.yaml"
	_, err = p.OpenScene(nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpenSceneWithoutStartScene(t *testing.T) {
	p := project.New("Blank")
	s, err := p.OpenScene(nil)
	require.NoError(t, err)
	assert.Equal(t, "Blank", s.Name())
	assert.Equal(t, 0, s.Len())
}
