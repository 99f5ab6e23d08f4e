package interop

import "fmt"

// Kind tags a component capability. The runtime answers presence queries per kind.
type Kind uint16

const (
	KindNone Kind = iota
	KindTransform
	KindRigidBody2D
	KindSpriteRenderer
	KindText

	// KindUser is the first value free for kinds registered outside this package.
	KindUser Kind = 256
)

var kindNames = map[Kind]string{
	KindNone:           "None",
	KindTransform:      "Transform",
	KindRigidBody2D:    "RigidBody2D",
	KindSpriteRenderer: "SpriteRenderer",
	KindText:           "Text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}
