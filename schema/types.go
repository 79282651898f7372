// Package schema infers the shape of arbitrary JSON documents: which fields exist,
// what they hold, and which aggregations make sense for each.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/jedipunkz/fieldlens/aggregate"
	"github.com/jedipunkz/fieldlens/value"
)

// Kind is the structural class of a field.
type Kind uint8

const (
	Simple Kind = iota
	Array
	ArrayOfObjects
	Object
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Array:
		return "array"
	case ArrayOfObjects:
		return "array_of_objects"
	case Object:
		return "object"
	}

	return ""
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch strings.ToLower(s) {
	case "array":
		*k = Array
	case "array_of_objects":
		*k = ArrayOfObjects
	case "object":
		*k = Object
	default:
		*k = Simple
	}

	return nil
}

// IsArray reports whether k describes an array.
func (k Kind) IsArray() bool {
	return k == Array || k == ArrayOfObjects
}

// ValueType classifies a scalar, or the items of an array.
type ValueType uint8

const (
	StringType ValueType = iota
	NumberType
	BooleanType
	DateType
	ObjectType
)

func (v ValueType) String() string {
	switch v {
	case StringType:
		return "string"
	case NumberType:
		return "number"
	case BooleanType:
		return "boolean"
	case DateType:
		return "date"
	case ObjectType:
		return "object"
	}

	return ""
}

func (v ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *ValueType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	var t ValueType

	switch strings.ToLower(s) {
	case "string":
		t = StringType
	case "number":
		t = NumberType
	case "boolean":
		t = BooleanType
	case "date":
		t = DateType
	default:
		t = ObjectType
	}

	*v = t

	return nil
}

// Descriptor describes one reachable field of an analyzed document.
type Descriptor struct {
	// Path from the document root. Array-of-object items appear as "arr[].key"
	// inside ArrayItemSchema and as the flattened alias "arr.key" at top level.
	Path string `json:"path"`

	Kind      Kind      `json:"type"`
	ValueType ValueType `json:"dataType"`

	// First value observed at Path.
	SampleValue *value.Value `json:"sampleValue"`

	// Depth from the root; top-level fields have depth 1.
	Depth int `json:"depth"`

	// Path of the structural parent, empty for top-level fields.
	ParentPath string `json:"parentPath,omitempty"`

	// Set for arrays, and for flattened aliases (copied from their array).
	ArrayLength *int `json:"arrayLength,omitempty"`

	// Shape of one item, only for ArrayOfObjects.
	ArrayItemSchema map[string]*Descriptor `json:"arrayItemSchema,omitempty"`

	IsFinancialData    bool             `json:"isFinancialData"`
	AggregationOptions []aggregate.Kind `json:"aggregationOptions"`
}

// Supports reports whether kind is one of the descriptor's aggregation options.
func (d *Descriptor) Supports(kind aggregate.Kind) bool {
	for _, k := range d.AggregationOptions {
		if k == kind {
			return true
		}
	}
	return false
}

// Find returns the descriptor with the given path.
func Find(descs []*Descriptor, path string) (*Descriptor, bool) {
	for _, d := range descs {
		if d.Path == path {
			return d, true
		}
	}
	return nil, false
}

// StructureType is the overall shape of a document.
type StructureType string

const (
	SingleObject      StructureType = "single_object"
	ArrayOfObjectsDoc StructureType = "array_of_objects"
	ArrayOfPrimitives StructureType = "array_of_primitives"
	Mixed             StructureType = "mixed"
)

// DisplayType is an advisory presentation for a whole document.
type DisplayType string

const (
	DisplayTable DisplayType = "table"
	DisplayChart DisplayType = "chart"
	DisplayList  DisplayType = "list"
	DisplayCard  DisplayType = "card"
)

// StructureInfo summarizes a document for presentation layers.
type StructureInfo struct {
	Type               StructureType `json:"type"`
	IsArray            bool          `json:"isArray"`
	ArrayLength        int           `json:"arrayLength,omitempty"`
	HasNestedObjects   bool          `json:"hasNestedObjects"`
	MaxDepth           int           `json:"maxDepth"`
	HasFinancialFields bool          `json:"hasFinancialFields"`
	RecommendedDisplay DisplayType   `json:"recommendedDisplayType"`
}
