package events

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fullpipe/twa-sdk-types/pkg/document"
	"github.com/fullpipe/twa-sdk-types/pkg/errors"
	"github.com/fullpipe/twa-sdk-types/pkg/overrides"
)

const base = "https://core.telegram.org/bots/webapps"

const page = `<h4><a class="anchor" href="#events-available-for-mini-apps"></a>Events Available for Mini Apps</h4>
<p>Mini Apps can receive <strong>events</strong> from the Telegram app.</p>
<table><tbody>
<tr><td>activated NEW</td><td>Occurs when the Mini App becomes active. <em>eventHandler</em> receives no parameters.</td></tr>
<tr><td>popupClosed</td><td>Occurs when the opened popup is closed. <em>eventHandler</em> receives an object with the field <em>button_id</em>.</td></tr>
</tbody></table>`

func registry() *overrides.Registry {
	return overrides.New(nil, map[string]string{"popupClosed": "{button_id: string}"})
}

func TestBind(t *testing.T) {
	doc, err := document.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}

	et, err := New(registry(), nil, base).Bind(doc)
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if et.DocLink != base+"#events-available-for-mini-apps" {
		t.Errorf("DocLink = %q", et.DocLink)
	}
	if !strings.Contains(et.Description, "<strong>events</strong>") {
		t.Errorf("Description = %q", et.Description)
	}

	type binding struct {
		Name   string
		NoArgs bool
		Shape  string
	}
	var got []binding
	for _, b := range et.Bindings {
		got = append(got, binding{b.EventName, b.NoArgs, b.PayloadShape})
	}
	want := []binding{
		{"activated", true, ""},
		{"popupClosed", false, "{button_id: string}"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestBindRow(t *testing.T) {
	b := New(registry(), nil, base)

	tests := []struct {
		name  string
		event string
		desc  string
		code  errors.Code
	}{
		{"no parameters", "themeChanged", "<em>eventHandler</em> receives no parameters.", ""},
		{"payload", "popupClosed", "receives an object", ""},
		{"missing payload", "invoiceClosed", "receives an object with the fields url and status.", errors.ErrCodeMissingEventPayload},
		{"bad name", "on event", "receives no parameters", errors.ErrCodeMalformedTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eb, err := b.BindRow(tt.event, tt.desc)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("BindRow() error = %v, want code %v", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("BindRow() error: %v", err)
			}
			if eb.EventName != tt.event {
				t.Errorf("EventName = %q", eb.EventName)
			}
		})
	}
}

func TestBindRowNamesEvent(t *testing.T) {
	_, err := New(nil, nil, base).BindRow("fileDownloadRequested", "receives an object")
	if err == nil || !strings.Contains(err.Error(), "fileDownloadRequested") {
		t.Errorf("error %v should name the event", err)
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		name string
		html string
		code errors.Code
	}{
		{"no heading", `<h3>Events Available for Mini Apps</h3><table></table>`, errors.ErrCodeMissingSection},
		{"no table", `<h4>Events Available for Mini Apps</h4><p>None.</p>`, errors.ErrCodeMalformedTable},
		{"short row", `<h4>Events Available for Mini Apps</h4><table><tbody><tr><td>x</td></tr></tbody></table>`, errors.ErrCodeMalformedTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := document.ParseString(tt.html)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := New(registry(), nil, base).Bind(doc); !errors.Is(err, tt.code) {
				t.Errorf("Bind() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestDefaultRegistryCoversKnownPayloadEvents(t *testing.T) {
	reg, err := overrides.Default()
	if err != nil {
		t.Fatal(err)
	}
	b := New(reg, nil, base)
	for _, ev := range reg.Events() {
		if _, err := b.BindRow(ev, "receives an object"); err != nil {
			t.Errorf("BindRow(%s) error: %v", ev, err)
		}
	}
}
