// Package classify turns one row of a description table into a member
// descriptor.
//
// A row has three columns: the field or method name, the declared type, and
// a free-text description. The declared type decides the category:
//
//	String, Boolean, True, Float, Integer   scalar field
//	Array of <Scalar>                       array-of-scalar field
//	Array of <Type>                         array of a referenced type
//	Function                                callable, parsed by pkg/signature
//	anything else                           reference to another type
//
// Classifying a reference also reports the referenced name to a
// [Discoverer]; that is how the resolver learns that a type exists.
package classify

import (
	"strings"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/overrides"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// Markers recognised in declared types and descriptions. Optional and
// color detection are substring heuristics tied to the page's wording.
const (
	ArrayPrefix    = "Array of"
	FunctionMarker = "Function"
	OptionalMarker = "Optional"
	ColorMarker    = "#RRGGBB"
	NewBadge       = " NEW"
)

// Scalars maps declared scalar type names to their kinds.
var Scalars = map[string]schema.ScalarKind{
	"String":  schema.ScalarString,
	"Boolean": schema.ScalarBoolean,
	"True":    schema.ScalarBoolean,
	"Float":   schema.ScalarNumber,
	"Integer": schema.ScalarNumber,
}

// Row is one table row.
type Row struct {
	Name        string // field name or method header
	Type        string // declared type text
	Description string // description markup
}

// Discoverer is told about every type name a row references.
type Discoverer interface {
	Discover(from, name schema.TypeName)
}

// DiscoverFunc adapts a function to [Discoverer].
type DiscoverFunc func(from, name schema.TypeName)

// Discover calls f(from, name).
func (f DiscoverFunc) Discover(from, name schema.TypeName) { f(from, name) }

// Describer converts description markup into display text.
type Describer interface {
	Convert(markup string) (string, error)
}

// Lookup is the part of the override registry the classifier reads.
type Lookup interface {
	Lookup(owner schema.TypeName, fn string) (overrides.Entry, bool)
}

// Classifier classifies table rows.
type Classifier struct {
	overrides Lookup
	discover  Discoverer
	describe  Describer
}

// New returns a Classifier. A nil describe keeps descriptions as markup.
func New(reg Lookup, discover Discoverer, describe Describer) *Classifier {
	return &Classifier{overrides: reg, discover: discover, describe: describe}
}

// CleanName strips the " NEW" badge from a name cell and trims it.
func CleanName(s string) string {
	return strings.TrimSpace(strings.Replace(s, NewBadge, "", 1))
}

// Classify returns the member descriptor for one row of owner's table.
// selfReturning marks every method of owner as returning owner.
func (c *Classifier) Classify(owner schema.TypeName, row Row, selfReturning bool) (schema.Member, error) {
	name := CleanName(row.Name)
	typ := strings.TrimSpace(row.Type)

	desc, err := c.description(row.Description)
	if err != nil {
		return schema.Member{}, errors.Wrap(errors.ErrCodeInternal, err, "describe %s.%s", owner, name)
	}
	optional := strings.Contains(row.Description, OptionalMarker)

	if kind, ok := Scalars[typ]; ok {
		return schema.Member{Field: &schema.FieldDescriptor{
			Name:         name,
			Category:     schema.CategoryScalar,
			ScalarKind:   kind,
			ColorLiteral: strings.Contains(row.Description, ColorMarker),
			Optional:     optional,
			Description:  desc,
		}}, nil
	}

	if elem, ok := strings.CutPrefix(typ, ArrayPrefix); ok {
		elem = strings.TrimSpace(elem)
		if kind, ok := Scalars[elem]; ok {
			return schema.Member{Field: &schema.FieldDescriptor{
				Name:        name,
				Category:    schema.CategoryArrayOfScalar,
				ScalarKind:  kind,
				Optional:    optional,
				Description: desc,
			}}, nil
		}
		return c.reference(owner, name, schema.TypeName(elem), true, optional, desc), nil
	}

	if typ == FunctionMarker {
		call, err := c.callable(owner, name, selfReturning)
		if err != nil {
			return schema.Member{}, err
		}
		call.Description = desc
		return schema.Member{Callable: call}, nil
	}

	return c.reference(owner, name, schema.TypeName(typ), false, optional, desc), nil
}

func (c *Classifier) reference(owner schema.TypeName, name string, ref schema.TypeName, array, optional bool, desc string) schema.Member {
	if c.discover != nil {
		c.discover.Discover(owner, ref)
	}
	return schema.Member{Field: &schema.FieldDescriptor{
		Name:           name,
		Category:       schema.CategoryTypeReference,
		ReferencedType: ref,
		Array:          array,
		Optional:       optional,
		Description:    desc,
	}}
}

func (c *Classifier) description(markup string) (string, error) {
	if c.describe == nil {
		return markup, nil
	}
	return c.describe.Convert(markup)
}
