// Package schema defines the descriptor graph produced by a scrape run.
//
// A run starts from the root type (WebApp) and ends with a [Graph] whose
// types are all resolved. Each [TypeDescriptor] holds its members in table
// row order; a [Member] is either a [FieldDescriptor] or a
// [CallableDescriptor], never both.
//
// Descriptors carry no rendering decisions beyond what the document states:
// renderers in pkg/render decide how a scalar kind or a callable looks in
// the target language.
package schema
