package interop

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BodyType is the simulation mode of a 2D rigid body.
type BodyType int32

const (
	BodyStatic BodyType = iota
	BodyDynamic
	BodyKinematic
)

// ErrUnknownBodyType is returned when a body type name cannot be parsed.
var ErrUnknownBodyType = errors.New("unknown body type")

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "Static"
	case BodyDynamic:
		return "Dynamic"
	case BodyKinematic:
		return "Kinematic"
	}
	return fmt.Sprintf("BodyType(%d)", int32(t))
}

// ParseBodyType maps a name produced by String back to its BodyType.
func ParseBodyType(name string) (BodyType, error) {
	switch name {
	case "Static":
		return BodyStatic, nil
	case "Dynamic":
		return BodyDynamic, nil
	case "Kinematic":
		return BodyKinematic, nil
	}
	return BodyStatic, errors.Wrapf(ErrUnknownBodyType, "%q", name)
}

func (t BodyType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *BodyType) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseBodyType(name)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*t = parsed
	return nil
}
