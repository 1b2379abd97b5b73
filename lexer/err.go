package lexer

import (
	"errors"

	"github.com/vbutenko/csa-toolchain/translate"
)

var f = translate.From

var (
	ErrContentBeforeSection = errors.New(f("content line before any section marker"))
	ErrUnknownSectionMarker = errors.New(f("unknown section marker"))
	ErrUnterminatedChar     = errors.New(f("unterminated or multi-codepoint character literal"))
	ErrNumericOverflow      = errors.New(f("numeric literal out of int32 range"))
	ErrUnknownMnemonic      = errors.New(f("unknown mnemonic"))
	ErrUnknownDeclaration   = errors.New(f("unknown declaration keyword"))
	ErrMalformedLabel       = errors.New(f("malformed label definition"))
	ErrMalformedDecl        = errors.New(f("malformed declaration"))
)

// ParseError reports a malformed source line, carrying the line number and
// offending text as spec §7 requires.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return f("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
