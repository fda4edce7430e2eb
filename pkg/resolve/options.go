package resolve

import "github.com/fullpipe/twa-sdk-types/pkg/schema"

// Defaults for the Telegram Mini Apps reference page.
const (
	DefaultRoot          schema.TypeName = "WebApp"
	DefaultRootHeading                   = "Initializing Mini Apps"
	DefaultDocBase                       = "https://core.telegram.org/bots/webapps"
	DefaultChainedMarker                 = "so they can be chained"
	DefaultMaxTypes                      = 1000

	// RootTag and TypeTag are the heading levels of the root section and
	// of every other type section.
	RootTag = "h3"
	TypeTag = "h4"
)

// DefaultSeeds are parameter types that the page only mentions in method
// descriptions. No table row references them, so they must be seeded.
var DefaultSeeds = []schema.TypeName{
	"BiometricRequestAccessParams",
	"BiometricAuthenticateParams",
	"AccelerometerStartParams",
	"DeviceOrientationStartParams",
	"GyroscopeStartParams",
	"LocationData",
	"StoryShareParams",
	"EmojiStatusParams",
	"DownloadFileParams",
	"PopupButton",
	"PopupParams",
	"ScanQrPopupParams",
}

// Describer converts section descriptions to display text.
type Describer interface {
	Convert(markup string) (string, error)
}

// Options configures a [Resolver].
type Options struct {
	// Root is the type resolved from the RootHeading section.
	Root schema.TypeName

	// RootHeading is the text of the root's h3 heading.
	RootHeading string

	// Seeds are registered as pending right after the root. A nil slice
	// means DefaultSeeds; use an empty slice to seed nothing.
	Seeds []schema.TypeName

	// DocBase is prefixed to heading anchors to build doc links.
	DocBase string

	// ChainedMarker, found in the paragraph after a table, marks every
	// method of that type as returning the type itself.
	ChainedMarker string

	// MaxTypes bounds the number of resolved types.
	MaxTypes int

	// Describe converts type descriptions. Nil keeps raw markup.
	Describe Describer

	// Logger receives debug messages as key/value pairs.
	Logger func(string, ...any)
}

// WithDefaults returns a copy of o with zero fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.RootHeading == "" {
		o.RootHeading = DefaultRootHeading
	}
	if o.Seeds == nil {
		o.Seeds = DefaultSeeds
	}
	if o.DocBase == "" {
		o.DocBase = DefaultDocBase
	}
	if o.ChainedMarker == "" {
		o.ChainedMarker = DefaultChainedMarker
	}
	if o.MaxTypes <= 0 {
		o.MaxTypes = DefaultMaxTypes
	}
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}
