// Package document exposes the parsed reference page through the few
// queries the scraper needs: find a heading by tag and text, walk forward
// to the next table, and read table rows cell by cell.
//
// The page follows a fixed convention: every type is an h4 heading, an
// optional description paragraph, and a three-column table (field, type,
// description). The root type uses an h3 heading instead. Nothing here
// understands that convention beyond locating elements; interpretation
// lives in pkg/resolve and pkg/classify.
package document

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed markup document.
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses a markup document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseString parses a markup document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Heading returns the first heading element with the given tag whose text,
// trimmed, equals text.
func (d *Document) Heading(tag, text string) (*Section, bool) {
	var found *goquery.Selection
	d.doc.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == text {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return &Section{heading: found}, true
}

// Headings returns every heading element with the given tag, in document order.
func (d *Document) Headings(tag string) []*Section {
	var out []*Section
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Section{heading: s})
	})
	return out
}

// Section is a heading and the elements that follow it.
type Section struct {
	heading *goquery.Selection
}

// Title returns the heading text.
func (s *Section) Title() string {
	return strings.TrimSpace(s.heading.Text())
}

// Anchor returns the href of the heading's anchor link, such as
// "#themeparams", or "" when the heading has none.
func (s *Section) Anchor() string {
	href, _ := s.heading.Find("a").First().Attr("href")
	return href
}

// Lead returns the inner markup of the element right after the heading, or
// "" when that element is the section's table.
func (s *Section) Lead() string {
	next := s.heading.Next()
	if next.Length() == 0 || goquery.NodeName(next) == "table" {
		return ""
	}
	h, _ := next.Html()
	return h
}

// Table returns the first table element among the heading's following
// siblings, up to the next heading. A section without its own table never
// borrows the next section's.
func (s *Section) Table() (*Table, bool) {
	n := nextElement(s.heading.Get(0), atom.Table)
	if n == nil {
		return nil, false
	}
	return &Table{sel: goquery.NewDocumentFromNode(n).Selection}, true
}

// nextElement walks the following siblings of n and returns the first
// element with tag a. It stops at the next heading.
func nextElement(n *html.Node, a atom.Atom) *html.Node {
	for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib.DataAtom == a {
			return sib
		}
		if isHeading(sib.DataAtom) {
			return nil
		}
	}
	return nil
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// Table is a description table.
type Table struct {
	sel *goquery.Selection
}

// Rows returns the body rows of the table. Header rows in thead are skipped.
func (t *Table) Rows() []Row {
	var rows []Row
	t.sel.Find("tbody > tr").Each(func(_ int, tr *goquery.Selection) {
		var row Row
		tr.Children().Each(func(_ int, td *goquery.Selection) {
			row.cells = append(row.cells, Cell{sel: td})
		})
		rows = append(rows, row)
	})
	return rows
}

// Trailer returns the element right after the table as a lower-case tag
// name and its text. Both are empty when the table is the last element.
func (t *Table) Trailer() (tag, text string) {
	next := t.sel.Next()
	if next.Length() == 0 {
		return "", ""
	}
	return goquery.NodeName(next), next.Text()
}

// Row is one table row.
type Row struct {
	cells []Cell
}

// Len returns the number of cells in the row.
func (r Row) Len() int { return len(r.cells) }

// Cell returns the i-th cell. Out-of-range indexes yield an empty cell.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.cells) {
		return Cell{}
	}
	return r.cells[i]
}

// Cell is one table cell.
type Cell struct {
	sel *goquery.Selection
}

// Text returns the cell's text content.
func (c Cell) Text() string {
	if c.sel == nil {
		return ""
	}
	return c.sel.Text()
}

// HTML returns the cell's inner markup.
func (c Cell) HTML() string {
	if c.sel == nil {
		return ""
	}
	h, _ := c.sel.Html()
	return h
}
