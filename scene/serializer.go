package scene

import (
	"io"
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/plus3/scriptglue/interop"
	"github.com/plus3/scriptglue/vmath"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateEntity is returned when a scene document names the same entity twice or
// names an entity that already exists.
var ErrDuplicateEntity = errors.New("duplicate entity id")

type sceneDocument struct {
	Scene    string           `yaml:"Scene"`
	Entities []entityDocument `yaml:"Entities"`
}

type entityDocument struct {
	Entity                  interop.EntityID   `yaml:"Entity"`
	TagComponent            *tagDocument       `yaml:"TagComponent,omitempty"`
	TransformComponent      *transformDocument `yaml:"TransformComponent,omitempty"`
	ScriptComponent         *scriptDocument    `yaml:"ScriptComponent,omitempty"`
	SpriteRendererComponent *spriteDocument    `yaml:"SpriteRendererComponent,omitempty"`
	RigidBody2DComponent    *rigidBodyDocument `yaml:"RigidBody2DComponent,omitempty"`
	TextComponent           *textDocument      `yaml:"TextComponent,omitempty"`
}

type tagDocument struct {
	Tag string `yaml:"Tag"`
}

type transformDocument struct {
	Position vec3 `yaml:"Position"`
	Rotation vec3 `yaml:"Rotation"`
	Scale    vec3 `yaml:"Scale"`
}

type scriptDocument struct {
	ClassName    string          `yaml:"ClassName"`
	ScriptFields []fieldDocument `yaml:"ScriptFields,omitempty"`
}

type fieldDocument struct {
	Name string    `yaml:"Name"`
	Type FieldType `yaml:"Type"`
	Data yaml.Node `yaml:"Data"`
}

type spriteDocument struct {
	Color        color   `yaml:"Color"`
	TilingFactor float32 `yaml:"TilingFactor"`
}

type rigidBodyDocument struct {
	BodyType      interop.BodyType `yaml:"BodyType"`
	FixedRotation bool             `yaml:"FixedRotation"`
	Mass          float32          `yaml:"Mass,omitempty"`
	GravityScale  *float32         `yaml:"GravityScale,omitempty"`
}

type textDocument struct {
	TextString  string  `yaml:"TextString"`
	Kerning     float32 `yaml:"Kerning"`
	LineSpacing float32 `yaml:"LineSpacing"`
	Color       color   `yaml:"Color"`
}

// vec2, vec3 and color encode as flow sequences: [x, y, z].
type (
	vec2  vmath.Vector2
	vec3  vmath.Vector3
	color vmath.Color
)

func flowSeq(values ...float32) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range values {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(f), 'g', -1, 32),
		})
	}
	return n
}

func decodeSeq(node *yaml.Node, n int) ([]float32, error) {
	var values []float32
	if err := node.Decode(&values); err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, errors.Errorf("line %d: want %d components, got %d", node.Line, n, len(values))
	}
	return values, nil
}

func (v vec2) MarshalYAML() (any, error) { return flowSeq(v.X, v.Y), nil }

func (v *vec2) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeSeq(node, 2)
	if err != nil {
		return err
	}
	*v = vec2{X: f[0], Y: f[1]}
	return nil
}

func (v vec3) MarshalYAML() (any, error) { return flowSeq(v.X, v.Y, v.Z), nil }

func (v *vec3) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeSeq(node, 3)
	if err != nil {
		return err
	}
	*v = vec3{X: f[0], Y: f[1], Z: f[2]}
	return nil
}

func (c color) MarshalYAML() (any, error) { return flowSeq(c.R, c.G, c.B, c.A), nil }

func (c *color) UnmarshalYAML(node *yaml.Node) error {
	f, err := decodeSeq(node, 4)
	if err != nil {
		return err
	}
	*c = color{R: f[0], G: f[1], B: f[2], A: f[3]}
	return nil
}

// Serializer reads and writes a scene as a YAML document.
type Serializer struct {
	scene  *Scene
	logger *zap.Logger
}

func NewSerializer(s *Scene) *Serializer {
	return &Serializer{scene: s, logger: s.logger.Named("serializer")}
}

// Serialize writes every live entity in creation order.
func (z *Serializer) Serialize(w io.Writer) error {
	doc := sceneDocument{Scene: z.scene.name}
	for id := range z.scene.storage.Entities() {
		doc.Entities = append(doc.Entities, z.encodeEntity(id))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "encode scene")
	}
	return enc.Close()
}

func (z *Serializer) encodeEntity(id interop.EntityID) entityDocument {
	s := z.scene
	doc := entityDocument{Entity: id}

	if tag := Read[TagComponent](s.storage, id); tag != nil {
		doc.TagComponent = &tagDocument{Tag: tag.Tag}
	}
	if tc := Read[TransformComponent](s.storage, id); tc != nil {
		doc.TransformComponent = &transformDocument{
			Position: vec3(tc.Translation),
			Rotation: vec3(tc.Rotation),
			Scale:    vec3(tc.Scale),
		}
	}
	if sc := Read[ScriptComponent](s.storage, id); sc != nil {
		doc.ScriptComponent = &scriptDocument{
			ClassName:    sc.ClassName,
			ScriptFields: z.encodeFields(id, sc.ClassName),
		}
	}
	if sr := Read[SpriteRendererComponent](s.storage, id); sr != nil {
		doc.SpriteRendererComponent = &spriteDocument{Color: color(sr.Color), TilingFactor: sr.TilingFactor}
	}
	if rb := Read[RigidBody2DComponent](s.storage, id); rb != nil {
		rbd := &rigidBodyDocument{BodyType: rb.Type, FixedRotation: rb.FixedRotation, Mass: rb.Mass}
		if rb.GravityScale != 1 {
			g := rb.GravityScale
			rbd.GravityScale = &g
		}
		doc.RigidBody2DComponent = rbd
	}
	if tc := Read[TextComponent](s.storage, id); tc != nil {
		doc.TextComponent = &textDocument{
			TextString:  tc.TextString,
			Kerning:     tc.Kerning,
			LineSpacing: tc.LineSpacing,
			Color:       color(tc.Color),
		}
	}
	return doc
}

// encodeFields lists the stored fields of id in class declaration order.
func (z *Serializer) encodeFields(id interop.EntityID, className string) []fieldDocument {
	class, ok := z.scene.engine.Class(className)
	if !ok {
		return nil
	}
	stored := z.scene.engine.Fields(id)

	var fields []fieldDocument
	for _, f := range class.Fields {
		sfi, ok := stored[f.Name]
		if !ok {
			continue
		}
		var data yaml.Node
		if err := data.Encode(fieldData(f.Type, sfi.Value)); err != nil {
			z.logger.Warn("skipping field", zap.String("field", f.Name), zap.Error(err))
			continue
		}
		fields = append(fields, fieldDocument{Name: f.Name, Type: f.Type, Data: data})
	}
	return fields
}

func fieldData(t FieldType, v any) any {
	switch t {
	case FieldVector2:
		return vec2(v.(vmath.Vector2))
	case FieldVector3:
		return vec3(v.(vmath.Vector3))
	case FieldColor:
		return color(v.(vmath.Color))
	case FieldEntity:
		return uint64(v.(interop.EntityID))
	}
	return v
}

// decodeFieldData decodes a Data node into the storage type of t.
func decodeFieldData(t FieldType, node *yaml.Node) (any, error) {
	switch t {
	case FieldVector2:
		var v vec2
		err := node.Decode(&v)
		return vmath.Vector2(v), err
	case FieldVector3:
		var v vec3
		err := node.Decode(&v)
		return vmath.Vector3(v), err
	case FieldColor:
		var c color
		err := node.Decode(&c)
		return vmath.Color(c), err
	}
	target := t.storageType()
	if target == nil {
		return nil, errors.Wrapf(ErrFieldType, "field type %s", t)
	}
	ptr := reflect.New(target)
	if err := node.Decode(ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

// Deserialize adds the entities of a scene document to the scene. The scene must not
// be running. Script fields of unknown classes are skipped with a warning.
func (z *Serializer) Deserialize(r io.Reader) error {
	s := z.scene
	if s.running {
		return errors.Wrap(ErrAlreadyRunning, "deserialize")
	}

	var doc sceneDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return errors.Wrap(err, "decode scene")
	}

	seen := make(map[interop.EntityID]struct{}, len(doc.Entities))
	for _, e := range doc.Entities {
		if e.Entity == interop.NoEntity {
			return errors.New("scene entity without id")
		}
		if _, dup := seen[e.Entity]; dup || s.storage.Exists(e.Entity) {
			return errors.Wrapf(ErrDuplicateEntity, "entity %d", e.Entity)
		}
		seen[e.Entity] = struct{}{}
	}

	if doc.Scene != "" {
		s.name = doc.Scene
	}
	for _, e := range doc.Entities {
		z.decodeEntity(e)
	}
	z.logger.Debug("deserialized scene", zap.String("scene", s.name), zap.Int("entities", len(doc.Entities)))
	return nil
}

func (z *Serializer) decodeEntity(e entityDocument) {
	s := z.scene
	name := ""
	if e.TagComponent != nil {
		name = e.TagComponent.Tag
	}
	id := s.CreateEntityWithUUID(e.Entity, name)

	if t := e.TransformComponent; t != nil {
		s.storage.AddComponent(id, TransformComponent{
			Translation: vmath.Vector3(t.Position),
			Rotation:    vmath.Vector3(t.Rotation),
			Scale:       vmath.Vector3(t.Scale),
		})
	}
	if sc := e.ScriptComponent; sc != nil {
		s.storage.AddComponent(id, ScriptComponent{ClassName: sc.ClassName})
		z.decodeFields(id, sc)
	}
	if sr := e.SpriteRendererComponent; sr != nil {
		s.storage.AddComponent(id, SpriteRendererComponent{Color: vmath.Color(sr.Color), TilingFactor: sr.TilingFactor})
	}
	if rbd := e.RigidBody2DComponent; rbd != nil {
		rb := NewRigidBody2D(rbd.BodyType)
		rb.FixedRotation = rbd.FixedRotation
		if rbd.Mass > 0 {
			rb.Mass = rbd.Mass
		}
		if rbd.GravityScale != nil {
			rb.GravityScale = *rbd.GravityScale
		}
		s.storage.AddComponent(id, rb)
	}
	if tc := e.TextComponent; tc != nil {
		s.storage.AddComponent(id, TextComponent{
			TextString:  tc.TextString,
			Kerning:     tc.Kerning,
			LineSpacing: tc.LineSpacing,
			Color:       vmath.Color(tc.Color),
		})
	}
}

func (z *Serializer) decodeFields(id interop.EntityID, sc *scriptDocument) {
	if len(sc.ScriptFields) == 0 {
		return
	}
	class, ok := z.scene.engine.Class(sc.ClassName)
	if !ok {
		z.logger.Warn("unknown script class, fields dropped",
			zap.Uint64("entity", uint64(id)), zap.String("class", sc.ClassName))
		return
	}

	for _, fd := range sc.ScriptFields {
		f, ok := class.Field(fd.Name)
		if !ok || f.Type != fd.Type {
			z.logger.Warn("script field does not match class",
				zap.String("class", class.Name), zap.String("field", fd.Name), zap.Stringer("type", fd.Type))
			continue
		}
		v, err := decodeFieldData(f.Type, &fd.Data)
		if err == nil {
			err = z.scene.engine.SetField(id, class.Name, f.Name, v)
		}
		if err != nil {
			z.logger.Warn("bad script field data", zap.String("field", fd.Name), zap.Error(err))
		}
	}
}
