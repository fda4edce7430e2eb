package schema

// TypeName identifies a named type. It is the heading text of the type's
// section in the source document and is unique within a run.
type TypeName string

// Status is the resolution state of a type name. A name that was never
// referenced has no state at all.
type Status int

const (
	// Pending types have been referenced but their section was not read yet.
	Pending Status = iota + 1
	// Resolved types have had every table row classified.
	Resolved
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	default:
		return "unseen"
	}
}

// ResolutionState pairs a type name with its status.
type ResolutionState struct {
	Name   TypeName `json:"name"`
	Status Status   `json:"status"`
}

// Category classifies a field row.
type Category string

const (
	CategoryScalar        Category = "scalar"
	CategoryArrayOfScalar Category = "array_of_scalar"
	CategoryTypeReference Category = "type_reference"
	CategoryCallable      Category = "callable"
)

// ScalarKind is a primitive value kind.
type ScalarKind string

const (
	ScalarString  ScalarKind = "string"
	ScalarBoolean ScalarKind = "boolean"
	ScalarNumber  ScalarKind = "number"
)

// FieldDescriptor describes a data member of a type.
type FieldDescriptor struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`

	// ScalarKind is set for CategoryScalar and CategoryArrayOfScalar.
	ScalarKind ScalarKind `json:"scalar_kind,omitempty"`

	// ColorLiteral marks scalar fields whose description documents the
	// #RRGGBB format. Renderers emit a color pattern instead of the raw kind.
	ColorLiteral bool `json:"color_literal,omitempty"`

	// ReferencedType is set for CategoryTypeReference.
	ReferencedType TypeName `json:"referenced_type,omitempty"`

	// Array marks a type reference declared as "Array of <Type>".
	Array bool `json:"array,omitempty"`

	// Optional is true when the description text contains "Optional".
	Optional bool `json:"optional"`

	Description string `json:"description"`
}

// Arg is one positional argument parsed from a method header.
type Arg struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
}

// CallableDescriptor describes a method of a type.
type CallableDescriptor struct {
	Owner TypeName `json:"owner"`
	Name  string   `json:"name"`
	Args  []Arg    `json:"args"`

	// OverrideArgTypes has one entry per Args element, in order.
	OverrideArgTypes []string `json:"override_arg_types,omitempty"`

	// ReturnType is the owner name for chainable methods, the override's
	// return type, or "void".
	ReturnType string `json:"return_type"`

	// SelfReturning is copied from the owning type.
	SelfReturning bool `json:"self_returning"`

	// FullSignature replaces the generated declaration when set.
	FullSignature string `json:"full_signature,omitempty"`

	Description string `json:"description"`
}

// Member is one table row of a type: exactly one of Field or Callable is set.
type Member struct {
	Field    *FieldDescriptor    `json:"field,omitempty"`
	Callable *CallableDescriptor `json:"callable,omitempty"`
}

// Name returns the member's field or method name.
func (m Member) Name() string {
	if m.Callable != nil {
		return m.Callable.Name
	}
	if m.Field != nil {
		return m.Field.Name
	}
	return ""
}

// TypeDescriptor is a resolved type with its members in row order.
type TypeDescriptor struct {
	Name          TypeName `json:"name"`
	Description   string   `json:"description"`
	DocLink       string   `json:"doc_link"`
	SelfReturning bool     `json:"self_returning"`
	Members       []Member `json:"members"`
}

// EventBinding binds an event name to its callback shape.
type EventBinding struct {
	EventName   string `json:"event_name"`
	Description string `json:"description"`
	NoArgs      bool   `json:"no_args"`

	// PayloadShape is the callback argument type when NoArgs is false.
	PayloadShape string `json:"payload_shape,omitempty"`
}

// EventTable is the bound event section of the document.
type EventTable struct {
	Description string         `json:"description"`
	DocLink     string         `json:"doc_link"`
	Bindings    []EventBinding `json:"bindings"`
}

// Reference is a directed edge from a type to a type one of its fields names.
type Reference struct {
	From TypeName `json:"from"`
	To   TypeName `json:"to"`
}
