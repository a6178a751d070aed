package load

// DefaultLabelDistance is the maximum distance, in canvas units, between a
// floating text shape and an edge for the text to be used as the edge label.
const DefaultLabelDistance = 80

// Option configures diagram loading.
type Option func(*options)

type options struct {
	page     string
	floating bool
	distance float64
}

func newOptions(opts ...Option) *options {
	o := &options{distance: DefaultLabelDistance}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPage selects the page of an mxfile by name. The first page is
// loaded when no page is selected.
func WithPage(name string) Option {
	return func(o *options) {
		o.page = name
	}
}

// WithFloatingLabels enables binding free-standing text shapes to the
// nearest unlabeled edge.
func WithFloatingLabels(enabled bool) Option {
	return func(o *options) {
		o.floating = enabled
	}
}

// WithLabelDistance sets the maximum binding distance for floating labels.
// Non-positive values are ignored.
func WithLabelDistance(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.distance = d
		}
	}
}
