// Package interoptest provides a recording Boundary for tests of behavior code.
package interoptest

import (
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
	"github.com/stretchr/testify/mock"
)

// MockBoundary is an interop.Boundary whose answers are programmed with On and whose
// calls are recorded for AssertCalled and AssertExpectations.
type MockBoundary struct {
	mock.Mock
}

var _ interop.Boundary = (*MockBoundary)(nil)

// NewMockBoundary returns a mock that already answers Version with interop.Version.
func NewMockBoundary() *MockBoundary {
	m := &MockBoundary{}
	m.On("Version").Return(interop.Version).Maybe()
	return m
}

func (m *MockBoundary) Version() uint32 {
	return m.Called().Get(0).(uint32)
}

func (m *MockBoundary) HasComponent(id interop.EntityID, kind interop.Kind) bool {
	return m.Called(id, kind).Bool(0)
}

func (m *MockBoundary) FindEntityByName(name string) interop.EntityID {
	return m.Called(name).Get(0).(interop.EntityID)
}

func (m *MockBoundary) ScriptInstance(id interop.EntityID) (interop.Instance, bool) {
	args := m.Called(id)
	return args.Get(0).(interop.Instance), args.Bool(1)
}

func (m *MockBoundary) TransformPosition(id interop.EntityID) vmath.Vector3 {
	return m.Called(id).Get(0).(vmath.Vector3)
}

func (m *MockBoundary) SetTransformPosition(id interop.EntityID, v vmath.Vector3) {
	m.Called(id, v)
}

func (m *MockBoundary) TransformRotation(id interop.EntityID) vmath.Vector3 {
	return m.Called(id).Get(0).(vmath.Vector3)
}

func (m *MockBoundary) SetTransformRotation(id interop.EntityID, v vmath.Vector3) {
	m.Called(id, v)
}

func (m *MockBoundary) TransformScale(id interop.EntityID) vmath.Vector3 {
	return m.Called(id).Get(0).(vmath.Vector3)
}

func (m *MockBoundary) SetTransformScale(id interop.EntityID, v vmath.Vector3) {
	m.Called(id, v)
}

func (m *MockBoundary) ApplyLinearImpulse(id interop.EntityID, impulse, worldPoint vmath.Vector2, wake bool) {
	m.Called(id, impulse, worldPoint, wake)
}

func (m *MockBoundary) ApplyLinearImpulseToCenter(id interop.EntityID, impulse vmath.Vector2, wake bool) {
	m.Called(id, impulse, wake)
}

func (m *MockBoundary) LinearVelocity(id interop.EntityID) vmath.Vector2 {
	return m.Called(id).Get(0).(vmath.Vector2)
}

func (m *MockBoundary) BodyType(id interop.EntityID) interop.BodyType {
	return m.Called(id).Get(0).(interop.BodyType)
}

func (m *MockBoundary) SetBodyType(id interop.EntityID, t interop.BodyType) {
	m.Called(id, t)
}

func (m *MockBoundary) SpriteColor(id interop.EntityID) vmath.Color {
	return m.Called(id).Get(0).(vmath.Color)
}

func (m *MockBoundary) SetSpriteColor(id interop.EntityID, c vmath.Color) {
	m.Called(id, c)
}

func (m *MockBoundary) Text(id interop.EntityID) string {
	return m.Called(id).String(0)
}

func (m *MockBoundary) SetText(id interop.EntityID, s string) {
	m.Called(id, s)
}

func (m *MockBoundary) TextKerning(id interop.EntityID) float32 {
	return m.Called(id).Get(0).(float32)
}

func (m *MockBoundary) SetTextKerning(id interop.EntityID, k float32) {
	m.Called(id, k)
}

func (m *MockBoundary) TextLineSpacing(id interop.EntityID) float32 {
	return m.Called(id).Get(0).(float32)
}

func (m *MockBoundary) SetTextLineSpacing(id interop.EntityID, s float32) {
	m.Called(id, s)
}

func (m *MockBoundary) TextColor(id interop.EntityID) vmath.Color {
	return m.Called(id).Get(0).(vmath.Color)
}

func (m *MockBoundary) SetTextColor(id interop.EntityID, c vmath.Color) {
	m.Called(id, c)
}
