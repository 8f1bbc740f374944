package render

// Option applies a configuration option to a renderer.
type Option func(*options)

type options struct {
	color    bool
	indent   bool
	barWidth int
}

const defaultBarWidth = 20

func (o options) effectiveBarWidth() int {
	if o.barWidth > 0 {
		return o.barWidth
	}
	return defaultBarWidth
}

// WithColor paints tier bands with ANSI colour escapes in table output.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithIndent pretty-prints JSON output.
func WithIndent(enabled bool) Option {
	return func(o *options) { o.indent = enabled }
}

// WithBarWidth sets the width, in cells, of text bars.
func WithBarWidth(n int) Option {
	return func(o *options) { o.barWidth = n }
}
