// Package events binds the rows of the "Events Available for Mini Apps"
// table to callback shapes.
//
// The event set is closed: nothing here discovers new types. An event whose
// description says it receives no parameters gets a no-argument callback;
// every other event must have a payload shape in the override registry.
package events

import (
	"strings"

	"github.com/fullpipe/twa-sdk-types/pkg/classify"
	"github.com/fullpipe/twa-sdk-types/pkg/document"
	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

const (
	// Heading is the h4 text of the event section.
	Heading    = "Events Available for Mini Apps"
	HeadingTag = "h4"

	// NoArgsMarker in an event description means the callback takes nothing.
	NoArgsMarker = "receives no parameters"
)

// Payloads looks up event payload shapes.
type Payloads interface {
	EventPayload(event string) (string, bool)
}

// Locator finds section headings in the document.
type Locator interface {
	Heading(tag, text string) (*document.Section, bool)
}

// Binder binds event rows.
type Binder struct {
	payloads Payloads
	describe classify.Describer
	docBase  string
}

// New returns a Binder. A nil describe keeps descriptions as markup.
func New(payloads Payloads, describe classify.Describer, docBase string) *Binder {
	return &Binder{payloads: payloads, describe: describe, docBase: docBase}
}

// Bind locates the event section in doc and binds every row of its table,
// in document order.
func (b *Binder) Bind(doc Locator) (*schema.EventTable, error) {
	sec, ok := doc.Heading(HeadingTag, Heading)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingSection, "no %s heading %q", HeadingTag, Heading)
	}
	table, ok := sec.Table()
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedTable, "section %q has no table", Heading)
	}

	desc, err := b.text(sec.Lead())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "describe events")
	}
	et := &schema.EventTable{
		Description: desc,
		DocLink:     b.docBase + sec.Anchor(),
		Bindings:    []schema.EventBinding{},
	}
	for i, row := range table.Rows() {
		if row.Len() < 2 {
			return nil, errors.New(errors.ErrCodeMalformedTable, "event row %d has %d cell(s), want 2", i+1, row.Len())
		}
		eb, err := b.BindRow(row.Cell(0).Text(), row.Cell(1).HTML())
		if err != nil {
			return nil, err
		}
		et.Bindings = append(et.Bindings, eb)
	}
	return et, nil
}

// BindRow binds one event given its name cell and description markup.
func (b *Binder) BindRow(name, description string) (schema.EventBinding, error) {
	name = classify.CleanName(name)
	if err := errors.ValidateIdentifier(name); err != nil {
		return schema.EventBinding{}, errors.Wrap(errors.ErrCodeMalformedTable, err, "event name")
	}

	text, err := b.text(description)
	if err != nil {
		return schema.EventBinding{}, errors.Wrap(errors.ErrCodeInternal, err, "describe event %s", name)
	}
	eb := schema.EventBinding{EventName: name, Description: text}

	if strings.Contains(description, NoArgsMarker) {
		eb.NoArgs = true
		return eb, nil
	}
	shape, ok := b.lookup(name)
	if !ok {
		return schema.EventBinding{}, errors.New(errors.ErrCodeMissingEventPayload,
			"event %s receives a payload; define its shape in the overrides table", name)
	}
	eb.PayloadShape = shape
	return eb, nil
}

func (b *Binder) lookup(name string) (string, bool) {
	if b.payloads == nil {
		return "", false
	}
	return b.payloads.EventPayload(name)
}

func (b *Binder) text(markup string) (string, error) {
	if b.describe == nil {
		return markup, nil
	}
	return b.describe.Convert(markup)
}
