// Package typescript renders a descriptor graph as a TypeScript declaration
// file.
//
// The file declares, in order: the Telegram interface holding the root, the
// root interface, the EventType enum and EventCallbacks map when the graph
// has events, and every other type in resolution order. Fields are readonly
// and carry their description as a doc comment; methods use the argument
// types from the override registry.
package typescript

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// ColorType is emitted for string fields documented as #RRGGBB colors.
const ColorType = "`#${string}`"

const indent = "  "

// Render returns the declaration file for g.
func Render(g *schema.Graph) ([]byte, error) {
	root, ok := g.Type(g.Root)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "graph has no root type %q", g.Root)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "export interface Telegram {\n%s%s: %s;\n}\n", indent, g.Root, g.Root)

	if err := writeType(&buf, root); err != nil {
		return nil, err
	}
	if g.Events != nil {
		writeEvents(&buf, g.Events)
	}
	for _, t := range g.Types {
		if t.Name == g.Root {
			continue
		}
		if err := writeType(&buf, t); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeType(buf *bytes.Buffer, t *schema.TypeDescriptor) error {
	buf.WriteString("\n")
	writeDoc(buf, "", t.Description, "@see "+t.DocLink)
	fmt.Fprintf(buf, "export interface %s {\n", t.Name)
	for i, m := range t.Members {
		if i > 0 {
			buf.WriteString("\n")
		}
		switch {
		case m.Field != nil:
			writeField(buf, m.Field)
		case m.Callable != nil:
			decl, err := Method(m.Callable)
			if err != nil {
				return err
			}
			writeDoc(buf, indent, m.Callable.Description)
			buf.WriteString(indent + decl + "\n")
		default:
			return errors.New(errors.ErrCodeInternal, "%s: member %d is empty", t.Name, i)
		}
	}
	buf.WriteString("}\n")
	return nil
}

func writeField(buf *bytes.Buffer, f *schema.FieldDescriptor) {
	typ := FieldType(f)
	writeDoc(buf, indent, f.Description, "@type {"+typ+"}\n@readonly")
	opt := ""
	if f.Optional {
		opt = "?"
	}
	fmt.Fprintf(buf, "%sreadonly %s%s: %s;\n", indent, f.Name, opt, typ)
}

// FieldType returns the TypeScript type of a field.
func FieldType(f *schema.FieldDescriptor) string {
	switch f.Category {
	case schema.CategoryScalar:
		if f.ColorLiteral {
			return ColorType
		}
		return string(f.ScalarKind)
	case schema.CategoryArrayOfScalar:
		return string(f.ScalarKind) + "[]"
	default:
		if f.Array {
			return string(f.ReferencedType) + "[]"
		}
		return string(f.ReferencedType)
	}
}

// Method returns the declaration of a method, terminated by a semicolon.
func Method(c *schema.CallableDescriptor) (string, error) {
	if c.FullSignature != "" {
		return strings.TrimSuffix(strings.TrimSpace(c.FullSignature), ";") + ";", nil
	}
	if len(c.Args) > 0 && len(c.OverrideArgTypes) != len(c.Args) {
		return "", errors.New(errors.ErrCodeArityMismatch,
			"%s.%s has %d argument(s) but %d type(s)", c.Owner, c.Name, len(c.Args), len(c.OverrideArgTypes))
	}

	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		if a.Optional {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(c.OverrideArgTypes[i])
	}
	b.WriteString("): ")
	b.WriteString(c.ReturnType)
	b.WriteString(";")
	return b.String(), nil
}

func writeEvents(buf *bytes.Buffer, et *schema.EventTable) {
	buf.WriteString("\n")
	writeDoc(buf, "", et.Description, "@see "+et.DocLink)
	buf.WriteString("export const enum EventType {\n")
	for i, b := range et.Bindings {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeDoc(buf, indent, b.Description)
		fmt.Fprintf(buf, "%s%s = '%s',\n", indent, b.EventName, b.EventName)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("export interface EventCallbacks {\n")
	for _, b := range et.Bindings {
		cb := "() => void"
		if !b.NoArgs {
			cb = "(e: " + b.PayloadShape + ") => void"
		}
		fmt.Fprintf(buf, "%s[EventType.%s]: %s;\n", indent, b.EventName, cb)
	}
	buf.WriteString("}\n")
}

// writeDoc writes a JSDoc block. Empty sections are skipped; sections are
// separated by a blank comment line.
func writeDoc(buf *bytes.Buffer, prefix string, sections ...string) {
	var parts []string
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return
	}

	buf.WriteString(prefix + "/**\n")
	for i, p := range parts {
		if i > 0 {
			buf.WriteString(prefix + " *\n")
		}
		for _, line := range strings.Split(p, "\n") {
			line = strings.ReplaceAll(strings.TrimRight(line, " \t"), "*/", "*\\/")
			if line == "" {
				buf.WriteString(prefix + " *\n")
				continue
			}
			buf.WriteString(prefix + " * " + line + "\n")
		}
	}
	buf.WriteString(prefix + " */\n")
}
