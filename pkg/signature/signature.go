// Package signature parses the method headers used in the Mini Apps
// reference tables, such as "showPopup(params[, callback])".
//
// The accepted grammar is deliberately narrow:
//
//	name "(" [ req1 [ "," req2 ] ] [ [ "," ] "[" [ "," ] opt1 [ "," opt2 ] "]" ] ")"
//
// That is, up to two required names followed by one or two optional names in
// a single bracket group. A comma must be followed by a name or the bracket,
// so "f(a,)" and "f(a, [])" are rejected, as are nested brackets and variadic
// forms.
package signature

import (
	"regexp"
	"strings"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

// Signature is a parsed method header.
type Signature struct {
	Name string
	Args []schema.Arg
}

// Required returns the number of leading required arguments.
func (s Signature) Required() int {
	n := 0
	for _, a := range s.Args {
		if !a.Optional {
			n++
		}
	}
	return n
}

var headerRe = regexp.MustCompile(
	`^(?P<name>\w+)\(\s*` +
		`(?:(?P<r1>\w+)(?:\s*,\s*(?P<r2>\w+))?)?` +
		`(?:\s*(?:,\s*)?\[\s*(?:,\s*)?(?P<o1>\w+)(?:\s*,\s*(?P<o2>\w+))?\s*\])?` +
		`\s*\)$`,
)

var (
	nameIdx = headerRe.SubexpIndex("name")
	r1Idx   = headerRe.SubexpIndex("r1")
	r2Idx   = headerRe.SubexpIndex("r2")
	o1Idx   = headerRe.SubexpIndex("o1")
	o2Idx   = headerRe.SubexpIndex("o2")
)

// Parse parses a method header. It returns a MALFORMED_SIGNATURE error when
// header does not match the grammar; there is no partial result.
//
// A header without arguments, "name()", yields an empty (non-nil) Args.
func Parse(header string) (Signature, error) {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return Signature{}, errors.New(errors.ErrCodeMalformedSignature, "cannot parse method header %q", header)
	}

	sig := Signature{Name: m[nameIdx], Args: []schema.Arg{}}
	for _, g := range []struct {
		idx      int
		optional bool
	}{
		{r1Idx, false},
		{r2Idx, false},
		{o1Idx, true},
		{o2Idx, true},
	} {
		if name := m[g.idx]; name != "" {
			sig.Args = append(sig.Args, schema.Arg{Name: name, Optional: g.optional})
		}
	}
	return sig, nil
}
