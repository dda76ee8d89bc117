package harvest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

// Attribute is one typed attribute of an entity.
type Attribute struct {
	// Name is the tag with hyphens replaced by underscores.
	Name string `json:"name"`
	// Type is the declared type of the node, possibly empty.
	Type AttrType `json:"type,omitempty"`
	// Raw is the node text before coercion.
	Raw string `json:"raw"`
	// Nil is set for nodes marked nil="true"; Value is nil then.
	Nil bool `json:"nil,omitempty"`
	// Value is the coerced value.
	Value any `json:"-"`
}

// AttributeOf coerces a node. On a coercion failure the attribute still
// carries the zero value of the declared type and the *CoercionError is
// returned alongside it. A node with a non-string type and blank text is
// treated like a nil node.
func AttributeOf(node Node) (Attribute, error) {
	attr := Attribute{
		Name: AttributeName(node.Tag),
		Type: node.Type,
		Raw:  node.Text,
		Nil:  node.Nil || blankTyped(node),
	}

	if attr.Nil {
		return attr, nil
	}

	value, err := CoerceStrict(node.Type, node.Text)
	attr.Value = value

	return attr, err
}

func blankTyped(node Node) bool {
	return node.Type != TypeString && Known(node.Type) && strings.TrimSpace(node.Text) == ""
}

// AttributeName normalizes a tag into an attribute name.
func AttributeName(tag string) string {
	return strings.ReplaceAll(tag, "-", "_")
}

// Entity is an instance of a resource kind: an ordered set of typed
// attributes plus the client it was fetched through.
//
// Entities are shared by the cache and must be treated as read-only.
type Entity struct {
	kind    string
	attrs   []Attribute
	index   map[string]int
	fetcher Fetcher
}

// NewEntity builds an entity of kind. A repeated attribute name overwrites
// the earlier value but keeps its position.
func NewEntity(kind string, attrs ...Attribute) *Entity {
	entity := &Entity{
		kind:  kind,
		attrs: make([]Attribute, 0, len(attrs)),
		index: make(map[string]int, len(attrs)),
	}

	for _, attr := range attrs {
		attr.Name = AttributeName(attr.Name)

		if pos, ok := entity.index[attr.Name]; ok {
			entity.attrs[pos] = attr

			continue
		}

		entity.index[attr.Name] = len(entity.attrs)
		entity.attrs = append(entity.attrs, attr)
	}

	return entity
}

// Kind returns the declared kind name.
func (e *Entity) Kind() string { return e.kind }

// Len returns the number of attributes.
func (e *Entity) Len() int { return len(e.attrs) }

// Names returns the attribute names in document order.
func (e *Entity) Names() []string {
	names := make([]string, len(e.attrs))
	for i, attr := range e.attrs {
		names[i] = attr.Name
	}

	return names
}

// Attributes returns a copy of the attributes in document order.
func (e *Entity) Attributes() []Attribute {
	attrs := make([]Attribute, len(e.attrs))
	copy(attrs, e.attrs)

	return attrs
}

// Attribute returns the named attribute.
func (e *Entity) Attribute(name string) (Attribute, bool) {
	pos, ok := e.index[AttributeName(name)]
	if !ok {
		return Attribute{}, false
	}

	return e.attrs[pos], true
}

// Has reports whether the entity carries the named attribute.
func (e *Entity) Has(name string) bool {
	_, ok := e.index[AttributeName(name)]

	return ok
}

// Value returns the coerced value of the named attribute.
func (e *Entity) Value(name string) (any, bool) {
	attr, ok := e.Attribute(name)
	if !ok {
		return nil, false
	}

	return attr.Value, true
}

// Text returns the named attribute rendered as text, or "" if it is absent
// or nil.
func (e *Entity) Text(name string) string {
	value, _ := e.Value(name)

	return FormatValue(value)
}

// Int returns the named attribute as an integer, or 0.
func (e *Entity) Int(name string) int64 {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case decimal.Decimal:
		return v.IntPart()
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

// Float returns the named attribute as a float, or 0.
func (e *Entity) Float(name string) float64 {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case decimal.Decimal:
		return v.InexactFloat64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}

		return f
	default:
		return 0
	}
}

// Decimal returns the named attribute as a decimal, or zero.
func (e *Entity) Decimal(name string) decimal.Decimal {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}

		return d
	default:
		return decimal.Zero
	}
}

// Time returns the named attribute as a time, or the zero time.
func (e *Entity) Time(name string) time.Time {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case time.Time:
		return v
	case Date:
		return v.Time()
	case string:
		t, err := dateparse.ParseIn(strings.TrimSpace(v), time.UTC)
		if err != nil {
			return time.Time{}
		}

		return t
	default:
		return time.Time{}
	}
}

// Date returns the named attribute as a date, or the zero Date.
func (e *Entity) Date(name string) Date {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case Date:
		return v
	case time.Time:
		return DateOf(v)
	case string:
		t := e.Time(name)
		if t.IsZero() {
			return Date{}
		}

		return DateOf(t)
	default:
		return Date{}
	}
}

// Bool returns the named attribute as a boolean, or false.
func (e *Entity) Bool(name string) bool {
	value, _ := e.Value(name)

	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))

		return err == nil && b
	default:
		return false
	}
}

// ID returns the entity id as text. It reports false when the entity has no
// usable id.
func (e *Entity) ID() (string, bool) {
	id := e.Text("id")

	return id, id != ""
}

// String renders a short human summary of the entity.
func (e *Entity) String() string {
	if display, ok := displayers[e.kind]; ok {
		return display(e)
	}

	if name := e.Text("name"); name != "" {
		return e.kind + ": " + name
	}

	if id, ok := e.ID(); ok {
		return e.kind + ": " + id
	}

	return e.kind + ": " + constants.NoID
}

// Fetcher returns the client the entity was fetched through, or nil.
func (e *Entity) Fetcher() Fetcher { return e.fetcher }

// Bind attaches the client used for relationship traversal. It must only be
// called on entities that are not yet shared.
func (e *Entity) Bind(fetcher Fetcher) *Entity {
	e.fetcher = fetcher

	return e
}

// Child fetches one entity of kind nested under e.
func (e *Entity) Child(ctx context.Context, kind string, id any, opts ...FetchOption) (*Entity, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("fetching %s %v under %s: %w", kind, id, e.kind, ErrNoFetcher)
	}

	return e.fetcher.GetChild(ctx, e, kind, id, opts...)
}

// Children lists the entities of kind nested under e.
func (e *Entity) Children(ctx context.Context, kind string, params Params, opts ...FetchOption) iter.Seq2[*Entity, error] {
	if e.fetcher == nil {
		return ErrorSeq(fmt.Errorf("listing %s under %s: %w", kind, e.kind, ErrNoFetcher))
	}

	return e.fetcher.ListChildren(ctx, e, kind, params, opts...)
}

// MarshalJSON renders the attributes as a JSON object in document order.
func (e *Entity) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, attr := range e.attrs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal attribute %s: %w", attr.Name, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML renders the attributes as a YAML mapping in document order.
func (e *Entity) MarshalYAML() (interface{}, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, attr := range e.attrs {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Name}

		value := &yaml.Node{}
		if attr.Value == nil {
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		} else if err := value.Encode(attr.Value); err != nil {
			return nil, fmt.Errorf("failed to marshal attribute %s: %w", attr.Name, err)
		}

		mapping.Content = append(mapping.Content, key, value)
	}

	return mapping, nil
}

// Snapshot is the serializable form of an entity: the raw attribute text and
// declared types, re-coerced on load.
type Snapshot struct {
	Kind       string      `json:"kind"`
	Attributes []Attribute `json:"attributes"`
}

// Snapshot captures the entity for out-of-process storage.
func (e *Entity) Snapshot() Snapshot {
	return Snapshot{Kind: e.kind, Attributes: e.Attributes()}
}

// Entity rebuilds an entity from the snapshot. Values are coerced leniently.
func (s Snapshot) Entity() *Entity {
	attrs := make([]Attribute, 0, len(s.Attributes))

	for _, stored := range s.Attributes {
		attr, _ := AttributeOf(Node{Tag: stored.Name, Type: stored.Type, Text: stored.Raw, Nil: stored.Nil})
		attrs = append(attrs, attr)
	}

	return NewEntity(s.Kind, attrs...)
}

// FormatValue renders a coerced value as text.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		if v.IsZero() {
			return ""
		}

		return v.Format(time.RFC3339)
	case Date:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ErrorSeq returns a sequence that yields err once.
func ErrorSeq(err error) iter.Seq2[*Entity, error] {
	return func(yield func(*Entity, error) bool) {
		yield(nil, err)
	}
}
