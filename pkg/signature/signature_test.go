package signature

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/schema"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Signature
	}{
		{
			name:   "required and two optional",
			header: "switchInlineQuery(query[, choose_chat_types, asd])",
			want: Signature{Name: "switchInlineQuery", Args: []schema.Arg{
				{Name: "query", Optional: false},
				{Name: "choose_chat_types", Optional: true},
				{Name: "asd", Optional: true},
			}},
		},
		{
			name:   "two required",
			header: "onEvent(eventType, eventHandler)",
			want: Signature{Name: "onEvent", Args: []schema.Arg{
				{Name: "eventType", Optional: false},
				{Name: "eventHandler", Optional: false},
			}},
		},
		{
			name:   "comma outside bracket",
			header: "updateBiometricToken(token, [callback])",
			want: Signature{Name: "updateBiometricToken", Args: []schema.Arg{
				{Name: "token", Optional: false},
				{Name: "callback", Optional: true},
			}},
		},
		{
			name:   "no arguments",
			header: "closeScanQrPopup()",
			want:   Signature{Name: "closeScanQrPopup", Args: []schema.Arg{}},
		},
		{
			name:   "only optional",
			header: "readTextFromClipboard([callback])",
			want: Signature{Name: "readTextFromClipboard", Args: []schema.Arg{
				{Name: "callback", Optional: true},
			}},
		},
		{
			name:   "two required one optional",
			header: "setItem(key, value[, callback])",
			want: Signature{Name: "setItem", Args: []schema.Arg{
				{Name: "key", Optional: false},
				{Name: "value", Optional: false},
				{Name: "callback", Optional: true},
			}},
		},
		{
			name:   "single required",
			header: "isVersionAtLeast(version)",
			want: Signature{Name: "isVersionAtLeast", Args: []schema.Arg{
				{Name: "version", Optional: false},
			}},
		},
		{
			name:   "surrounding whitespace",
			header: "  expand()\n",
			want:   Signature{Name: "expand", Args: []schema.Arg{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.header)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.header, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.header, diff)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	headers := []string{
		"",
		"expand",
		"isVisible",
		"show(",
		"f(a, b, c)",
		"f([a, b, c])",
		"f(a[, [b]])",
		"f(...args)",
		"f(,)",
		"f(a,)",
		"f(a, b,)",
		"f(a, [])",
		"hide([])",
		"f(a b)",
		"f(a)[b]",
		"Telegram.WebApp.ready()",
	}

	for _, h := range headers {
		t.Run(h, func(t *testing.T) {
			_, err := Parse(h)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", h)
			}
			if !errors.Is(err, errors.ErrCodeMalformedSignature) {
				t.Errorf("Parse(%q) code = %v, want %v", h, errors.GetCode(err), errors.ErrCodeMalformedSignature)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	const header = "showScanQrPopup(params[, callback])"
	first, err := Parse(header)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, _ := Parse(header)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("Parse is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestRequired(t *testing.T) {
	sig, _ := Parse("switchInlineQuery(query[, choose_chat_types])")
	if got := sig.Required(); got != 1 {
		t.Errorf("Required() = %d, want 1", got)
	}
}
