package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexBasicProgram(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	source := "section data\n" +
		"  int 0 handler\n" +
		"  greeting:\n" +
		"  word 72\n" +
		"section text\n" +
		"  ; entry point\n" +
		"  start:\n" +
		"  out greeting\n" +
		"  halt\n" +
		"  handler:\n" +
		"  iret\n"

	terms, err := Lex(source)
	require.NoError(err)

	require.Len(terms, 10)
	assert.Equal(SectionData, terms[0].Kind)
	assert.Equal(IntDecl, terms[1].Kind)
	assert.Equal("0", terms[1].VectorIndex)
	assert.Equal("handler", terms[1].TargetAddr)
	assert.Equal(Label, terms[2].Kind)
	assert.Equal("greeting", terms[2].Name)
	assert.Equal(WordDecl, terms[3].Kind)
	assert.Equal("72", terms[3].Value)
	assert.Equal(SectionText, terms[4].Kind)
	assert.Equal(Label, terms[5].Kind)
	assert.Equal("start", terms[5].Name)
	assert.Equal(Instr, terms[6].Kind)
	assert.Equal("out", terms[6].Mnemonic)
	assert.Equal([]string{"greeting"}, terms[6].Operands)
	assert.Equal(Instr, terms[7].Kind)
	assert.Equal(Label, terms[8].Kind)
	assert.Equal(Instr, terms[9].Kind)
	assert.Equal("iret", terms[9].Mnemonic)
}

func TestLexCharacterLiteralWithSpace(t *testing.T) {
	require := require.New(t)

	terms, err := Lex("section data\n  word ' '\n")
	require.NoError(err)
	require.Len(terms, 2)
	require.Equal("' '", terms[1].Value)
}

func TestLexUnterminatedCharacterLiteral(t *testing.T) {
	require := require.New(t)

	_, err := Lex("section data\n  word 'a\n")
	require.Error(err)

	var perr *ParseError
	require.ErrorAs(err, &perr)
	require.Equal(2, perr.Line)
}

func TestLexNumericOverflow(t *testing.T) {
	require := require.New(t)

	_, err := Lex("section data\n  word 999999999999\n")
	require.Error(err)
	require.ErrorIs(err, ErrNumericOverflow)
}

func TestLexUnknownMnemonic(t *testing.T) {
	require := require.New(t)

	_, err := Lex("section text\n  frobnicate r1\n")
	require.Error(err)
	require.ErrorIs(err, ErrUnknownMnemonic)
}

func TestLexContentBeforeSection(t *testing.T) {
	require := require.New(t)

	_, err := Lex("  halt\n")
	require.Error(err)
	require.ErrorIs(err, ErrContentBeforeSection)
}

func TestLexCommentAndBlankLinesStripped(t *testing.T) {
	require := require.New(t)

	terms, err := Lex("section text\n\n  ; a comment\n  halt ; trailing\n")
	require.NoError(err)
	require.Len(terms, 2)
	require.Equal(Instr, terms[1].Kind)
	require.Equal("halt", terms[1].Mnemonic)
}
