package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "missing section",
			err:  New(ErrCodeMissingSection, "no h4 heading for type %s", "LocationData"),
			want: "MISSING_SECTION: no h4 heading for type LocationData",
		},
		{
			name: "arity mismatch",
			err:  New(ErrCodeArityMismatch, "%s.%s has %d argument(s), override declares %d", "WebApp", "showPopup", 2, 1),
			want: "ARITY_MISMATCH: WebApp.showPopup has 2 argument(s), override declares 1",
		},
		{
			name: "wrapped cause",
			err:  Wrap(ErrCodeInvalidOverrides, errors.New("toml: line 3: expected '='"), "decode overrides"),
			want: "INVALID_OVERRIDES: decode overrides: toml: line 3: expected '='",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsSentinel(t *testing.T) {
	errNotFound := errors.New("page not found")
	err := Wrap(ErrCodeNotFound, errNotFound, "GET %s", "https://core.telegram.org/bots/webapps")

	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNotFound)
	}
	if errors.Unwrap(err) != errNotFound {
		t.Errorf("Unwrap() = %v, want the sentinel", errors.Unwrap(err))
	}
	if !errors.Is(err, errNotFound) {
		t.Error("errors.Is(err, sentinel) = false, want true")
	}
}

// resolveErr wraps err the way the resolver reports a failing type.
func resolveErr(typ string, err error) error {
	return fmt.Errorf("resolve: resolve %s: %w", typ, err)
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{
			name: "missing section through resolve",
			err:  resolveErr("Ghost", New(ErrCodeMissingSection, "no h4 heading for type Ghost")),
			code: ErrCodeMissingSection,
			want: true,
		},
		{
			name: "arity mismatch through resolve",
			err:  resolveErr("BackButton", New(ErrCodeArityMismatch, "BackButton.onClick")),
			code: ErrCodeArityMismatch,
			want: true,
		},
		{
			name: "other code",
			err:  resolveErr("WebApp", New(ErrCodeMissingOverride, "WebApp.openLink")),
			code: ErrCodeArityMismatch,
			want: false,
		},
		{
			name: "outer code shadows inner",
			err:  Wrap(ErrCodeInternal, New(ErrCodeMalformedTable, "row 1"), "describe WebApp"),
			code: ErrCodeMalformedTable,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("plain error"),
			code: ErrCodeMalformedSignature,
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			code: ErrCodeMissingEventPayload,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"event payload", New(ErrCodeMissingEventPayload, "event popupClosed"), ErrCodeMissingEventPayload},
		{"through resolve", resolveErr("PopupParams", New(ErrCodeMalformedSignature, "show(")), ErrCodeMalformedSignature},
		{"outermost wins", Wrap(ErrCodeInternal, New(ErrCodeMissingOverride, "x"), "y"), ErrCodeInternal},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "coded",
			err:  New(ErrCodeMissingOverride, "WebApp.showPopup takes arguments; add an override"),
			want: "WebApp.showPopup takes arguments; add an override",
		},
		{
			name: "coded through resolve",
			err:  resolveErr("Ghost", New(ErrCodeMissingSection, "no h4 heading for type Ghost")),
			want: "no h4 heading for type Ghost",
		},
		{
			name: "plain error",
			err:  errors.New("context canceled"),
			want: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
