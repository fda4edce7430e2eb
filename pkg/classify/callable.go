package classify

import (
	"fmt"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/overrides"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
	"github.com/fullpipe/twa-sdk-types/pkg/signature"
)

// voidType is the return type of methods without an override return.
const voidType = "void"

// callable parses a method header and cross-checks it with the overrides.
//
// A full signature override wins outright. Otherwise a method with
// arguments must have an entry, and the entry must declare exactly one
// type per parsed argument.
func (c *Classifier) callable(owner schema.TypeName, header string, selfReturning bool) (*schema.CallableDescriptor, error) {
	sig, err := signature.Parse(header)
	if err != nil {
		return nil, fmt.Errorf("method of %s: %w", owner, err)
	}

	call := &schema.CallableDescriptor{
		Owner:         owner,
		Name:          sig.Name,
		Args:          sig.Args,
		ReturnType:    voidType,
		SelfReturning: selfReturning,
	}

	entry, found := c.lookup(owner, sig.Name)
	if found && entry.Full != "" {
		call.FullSignature = entry.Full
		return call, nil
	}

	if len(sig.Args) > 0 && !found {
		return nil, errors.New(errors.ErrCodeMissingOverride,
			"%s.%s takes %d argument(s); define their types in the overrides table", owner, sig.Name, len(sig.Args))
	}
	if found && len(entry.Args) != len(sig.Args) {
		return nil, errors.New(errors.ErrCodeArityMismatch,
			"%s.%s: header has %d argument(s), overrides declare %d", owner, sig.Name, len(sig.Args), len(entry.Args))
	}

	if found {
		call.OverrideArgTypes = entry.Args
		if entry.Return != "" {
			call.ReturnType = entry.Return
		}
	}
	if selfReturning {
		call.ReturnType = string(owner)
	}
	return call, nil
}

func (c *Classifier) lookup(owner schema.TypeName, fn string) (overrides.Entry, bool) {
	if c.overrides == nil {
		return overrides.Entry{}, false
	}
	return c.overrides.Lookup(owner, fn)
}
