// Package resolve discovers and resolves every type reachable from the root
// section of the reference page.
//
// The [Resolver] owns a worklist: a map from type name to [schema.Status]
// plus the order in which names were first seen. It is seeded with the root
// and a fixed list of names, and every type reference found while classifying
// a table registers another pending name. [Resolver.Run] takes pending names
// in first-discovered order, reads each one's section, and stops once nothing
// is pending. A name is resolved at most once.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/fullpipe/twa-sdk-types/pkg/classify"
	"github.com/fullpipe/twa-sdk-types/pkg/document"
	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// Classifier classifies one table row of owner.
type Classifier interface {
	Classify(owner schema.TypeName, row classify.Row, selfReturning bool) (schema.Member, error)
}

// Locator finds section headings in the document.
type Locator interface {
	Heading(tag, text string) (*document.Section, bool)
}

// Resolver is the worklist engine. It is not safe for concurrent use.
type Resolver struct {
	opts Options

	status map[schema.TypeName]schema.Status
	order  []schema.TypeName // first-discovered order
	next   int               // order[:next] are resolved

	refs    []schema.Reference
	seenRef map[schema.Reference]bool
}

// New returns a Resolver with an empty worklist.
func New(opts Options) *Resolver {
	return &Resolver{
		opts:    opts.WithDefaults(),
		status:  make(map[schema.TypeName]schema.Status),
		seenRef: make(map[schema.Reference]bool),
	}
}

// Seed registers names as pending. Known names are left as they are.
func (r *Resolver) Seed(names ...schema.TypeName) {
	for _, n := range names {
		r.register(n)
	}
}

// Discover records that from references name and registers name as pending
// if it was never seen. It implements [classify.Discoverer].
func (r *Resolver) Discover(from, name schema.TypeName) {
	ref := schema.Reference{From: from, To: name}
	if !r.seenRef[ref] {
		r.seenRef[ref] = true
		r.refs = append(r.refs, ref)
	}
	r.register(name)
}

// register adds name as pending and reports whether it was new.
func (r *Resolver) register(name schema.TypeName) bool {
	if _, ok := r.status[name]; ok {
		return false
	}
	r.status[name] = schema.Pending
	r.order = append(r.order, name)
	return true
}

// State returns the status of name, or 0 if it was never seen.
func (r *Resolver) State(name schema.TypeName) schema.Status {
	return r.status[name]
}

// Pending returns the pending names in the order they will be resolved.
func (r *Resolver) Pending() []schema.TypeName {
	out := make([]schema.TypeName, len(r.order)-r.next)
	copy(out, r.order[r.next:])
	return out
}

// States returns every known name with its status in first-discovered order.
func (r *Resolver) States() []schema.ResolutionState {
	out := make([]schema.ResolutionState, len(r.order))
	for i, n := range r.order {
		out[i] = schema.ResolutionState{Name: n, Status: r.status[n]}
	}
	return out
}

// Run resolves the root, the seeds, and every type they reach. On success
// no name is left pending. Any classification or lookup error aborts the
// run and is returned as is, wrapped with the type being resolved.
func (r *Resolver) Run(ctx context.Context, doc Locator, c Classifier) (*schema.Graph, error) {
	r.Seed(r.opts.Root)
	r.Seed(r.opts.Seeds...)

	g := &schema.Graph{Root: r.opts.Root}
	for r.next < len(r.order) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(g.Types) >= r.opts.MaxTypes {
			return nil, errors.New(errors.ErrCodeInternal,
				"more than %d types reachable from %s; is the document malformed?", r.opts.MaxTypes, r.opts.Root)
		}

		name := r.order[r.next]
		td, err := r.resolve(doc, c, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		r.status[name] = schema.Resolved
		r.next++
		g.Types = append(g.Types, td)

		r.opts.Logger("resolved type", "type", name, "members", len(td.Members), "pending", len(r.order)-r.next)
	}

	g.References = append([]schema.Reference(nil), r.refs...)
	return g, nil
}

func (r *Resolver) resolve(doc Locator, c Classifier, name schema.TypeName) (*schema.TypeDescriptor, error) {
	sec, err := r.section(doc, name)
	if err != nil {
		return nil, err
	}
	table, ok := sec.Table()
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedTable, "section %q has no table", sec.Title())
	}

	desc, err := r.describe(sec.Lead())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "describe %s", name)
	}
	td := &schema.TypeDescriptor{
		Name:          name,
		Description:   desc,
		DocLink:       r.opts.DocBase + sec.Anchor(),
		SelfReturning: r.chained(table),
		Members:       []schema.Member{},
	}

	for i, row := range table.Rows() {
		if row.Len() < 3 {
			return nil, errors.New(errors.ErrCodeMalformedTable, "row %d has %d cell(s), want 3", i+1, row.Len())
		}
		m, err := c.Classify(name, classify.Row{
			Name:        row.Cell(0).Text(),
			Type:        row.Cell(1).Text(),
			Description: row.Cell(2).HTML(),
		}, td.SelfReturning)
		if err != nil {
			return nil, err
		}
		td.Members = append(td.Members, m)
	}
	return td, nil
}

func (r *Resolver) section(doc Locator, name schema.TypeName) (*document.Section, error) {
	if name == r.opts.Root {
		if sec, ok := doc.Heading(RootTag, r.opts.RootHeading); ok {
			return sec, nil
		}
		return nil, errors.New(errors.ErrCodeMissingSection, "no %s heading %q for root type %s", RootTag, r.opts.RootHeading, name)
	}
	if sec, ok := doc.Heading(TypeTag, string(name)); ok {
		return sec, nil
	}
	return nil, errors.New(errors.ErrCodeMissingSection, "no %s heading for type %s", TypeTag, name)
}

func (r *Resolver) chained(t *document.Table) bool {
	tag, text := t.Trailer()
	return tag == "p" && strings.Contains(text, r.opts.ChainedMarker)
}

func (r *Resolver) describe(markup string) (string, error) {
	if r.opts.Describe == nil {
		return markup, nil
	}
	return r.opts.Describe.Convert(markup)
}
