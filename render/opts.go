package render

import (
	"errors"
	"fmt"
	"strings"
)

type Option func(*RenderState)

// SourcePos is accepted for parity with the HTML and XML renderers of other
// markdown libraries. Trees carry no positions, so it has no effect on
// CommonMark output.
func SourcePos(v bool) Option {
	return func(rs *RenderState) { rs.sourcePos = v }
}

// HardBreaks renders soft breaks as hard line breaks.
func HardBreaks(v bool) Option {
	return func(rs *RenderState) { rs.hardBreaks = v }
}

// Safe replaces raw HTML with a comment and drops link and image
// destinations using the javascript:, vbscript:, file: or data: schemes.
// Data URLs of png, gif, jpeg and webp images are kept.
func Safe(v bool) Option {
	return func(rs *RenderState) { rs.safe = v }
}

// Unsafe overrides Safe.
func Unsafe(v bool) Option {
	return func(rs *RenderState) { rs.unsafe = v }
}

// Normalize merges adjacent text nodes and drops empty ones before
// rendering.
func Normalize(v bool) Option {
	return func(rs *RenderState) { rs.normalize = v }
}

// ValidateUTF8 replaces invalid UTF-8 in literals with U+FFFD.
func ValidateUTF8(v bool) Option {
	return func(rs *RenderState) { rs.validateUTF8 = v }
}

// Smart renders straight quotes as curly quotes, -- and --- as en and em
// dashes and ... as an ellipsis.
func Smart(v bool) Option {
	return func(rs *RenderState) { rs.smart = v }
}

// Width wraps paragraph text at n columns. Zero disables wrapping.
func Width(n int) Option {
	return func(rs *RenderState) { rs.width = max(n, 0) }
}

var ErrUnknownOption = errors.New("unknown render option")

var optionNames = map[string][]Option{
	"default":      nil,
	"sourcepos":    {SourcePos(true)},
	"hardbreaks":   {HardBreaks(true)},
	"safe":         {Safe(true)},
	"unsafe":       {Unsafe(true)},
	"normalize":    {Normalize(true)},
	"validateutf8": {ValidateUTF8(true)},
	"smart":        {Smart(true)},
	"smartunsafe":  {Smart(true), Unsafe(true)},
}

// OptionNames lists the names ParseOptions accepts.
func OptionNames() []string {
	return []string{"default", "sourcepos", "hardbreaks", "safe", "unsafe",
		"normalize", "validateutf8", "smart", "smartunsafe"}
}

// ParseOptions maps option names, as found in configuration files and on
// the command line, to options. Names are case insensitive.
func ParseOptions(names []string) ([]Option, error) {
	var res []Option
	for _, name := range names {
		opts, ok := optionNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownOption, name,
				strings.Join(OptionNames(), ", "))
		}
		res = append(res, opts...)
	}
	return res, nil
}
