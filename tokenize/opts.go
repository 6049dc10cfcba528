package tokenize

type tokenizeOpts struct {
	gfm          bool
	validateUTF8 bool
	smart        bool
}

type Option func(*tokenizeOpts)

// WithGFM enables the GitHub extensions: tables, strikethrough, task lists
// and bare URL links.
func WithGFM(v bool) Option {
	return func(o *tokenizeOpts) { o.gfm = v }
}

// WithValidateUTF8 replaces invalid UTF-8 in delivered text with U+FFFD.
func WithValidateUTF8(v bool) Option {
	return func(o *tokenizeOpts) { o.validateUTF8 = v }
}

// WithSmart substitutes typographic quotes, dashes and ellipses.
func WithSmart(v bool) Option {
	return func(o *tokenizeOpts) { o.smart = v }
}
