package parser

type parseOpts struct {
	strictText     bool
	rejectTrailing bool
	maxDepth       int
}

// Option configures a Parser.
type Option func(*parseOpts)

// WithStrictText makes a text value without a closing quote a parse error
// instead of running to the end of input.
func WithStrictText() Option {
	return func(o *parseOpts) { o.strictText = true }
}

// WithRejectTrailing makes anything but whitespace after the root value a
// parse error. By default trailing input is ignored.
func WithRejectTrailing() Option {
	return func(o *parseOpts) { o.rejectTrailing = true }
}

// WithMaxDepth bounds how deeply lists and objects may nest. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(o *parseOpts) { o.maxDepth = n }
}
