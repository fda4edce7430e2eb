package schema

// Graph is the resolved descriptor graph of one run.
type Graph struct {
	Root TypeName `json:"root"`

	// Types are listed in resolution order, root first.
	Types []*TypeDescriptor `json:"types"`

	// Events is nil when the run did not bind an event table.
	Events *EventTable `json:"events,omitempty"`

	// References are deduplicated and listed in discovery order.
	References []Reference `json:"references"`
}

// Type returns the descriptor with the given name.
func (g *Graph) Type(name TypeName) (*TypeDescriptor, bool) {
	for _, t := range g.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TypeNames returns type names in resolution order.
func (g *Graph) TypeNames() []TypeName {
	names := make([]TypeName, len(g.Types))
	for i, t := range g.Types {
		names[i] = t.Name
	}
	return names
}

// MemberCount returns the total number of members across all types.
func (g *Graph) MemberCount() int {
	n := 0
	for _, t := range g.Types {
		n += len(t.Members)
	}
	return n
}
