package lexer

import (
	"strconv"
	"strings"

	"github.com/vbutenko/csa-toolchain/isa"
)

// Lex transforms assembly source text into a flat sequence of Terms,
// stripped of comments and blank lines. It validates lexical well-formedness
// (character literals, numeric literal range, known mnemonics and
// declaration keywords) but defers label resolution, operand-shape checking
// and value substitution to the translator.
func Lex(source string) ([]Term, error) {
	var terms []Term
	section := ""

	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		indented := len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t')

		content := strings.TrimSpace(stripComment(raw))
		if content == "" {
			continue
		}

		if !indented {
			switch content {
			case "section text":
				section = "text"
				terms = append(terms, Term{Kind: SectionText, Line: lineNo})
				continue
			case "section data":
				section = "data"
				terms = append(terms, Term{Kind: SectionData, Line: lineNo})
				continue
			default:
				return nil, &ParseError{Line: lineNo, Text: content, Err: ErrUnknownSectionMarker}
			}
		}

		if section == "" {
			return nil, &ParseError{Line: lineNo, Text: content, Err: ErrContentBeforeSection}
		}

		words, err := splitWords(content)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: content, Err: err}
		}
		if len(words) == 0 {
			continue
		}

		if strings.HasSuffix(words[0], ":") && len(words[0]) > 1 {
			if len(words) != 1 {
				return nil, &ParseError{Line: lineNo, Text: content, Err: ErrMalformedLabel}
			}
			terms = append(terms, Term{Kind: Label, Line: lineNo, Name: strings.TrimSuffix(words[0], ":")})
			continue
		}

		for _, w := range words {
			if err := checkNumericToken(w); err != nil {
				return nil, &ParseError{Line: lineNo, Text: content, Err: err}
			}
		}

		if section == "data" {
			switch words[0] {
			case "word":
				if len(words) != 2 {
					return nil, &ParseError{Line: lineNo, Text: content, Err: ErrMalformedDecl}
				}
				terms = append(terms, Term{Kind: WordDecl, Line: lineNo, Value: words[1]})
			case "int":
				if len(words) != 3 {
					return nil, &ParseError{Line: lineNo, Text: content, Err: ErrMalformedDecl}
				}
				terms = append(terms, Term{Kind: IntDecl, Line: lineNo, VectorIndex: words[1], TargetAddr: words[2]})
			default:
				return nil, &ParseError{Line: lineNo, Text: content, Err: ErrUnknownDeclaration}
			}
			continue
		}

		mnemonic := words[0]
		if _, ok := isa.ParseOpcode(mnemonic); !ok {
			return nil, &ParseError{Line: lineNo, Text: content, Err: ErrUnknownMnemonic}
		}
		terms = append(terms, Term{Kind: Instr, Line: lineNo, Mnemonic: mnemonic, Operands: words[1:]})
	}

	return terms, nil
}

// stripComment removes a ';'-introduced comment, treating any ';' inside a
// well-formed 'x' character literal as content, not a comment marker.
func stripComment(line string) string {
	runes := []rune(line)
	n := len(runes)
	for i := 0; i < n; i++ {
		switch runes[i] {
		case '\'':
			j := i + 1
			for j < n && runes[j] != '\'' {
				j++
			}
			if j < n {
				i = j
				continue
			}
			return string(runes) // unterminated quote: let splitWords report it
		case ';':
			return string(runes[:i])
		}
	}
	return string(runes)
}

// splitWords tokenizes on whitespace, treating a 'x' character literal and
// a $(...) compile-time expression as single atomic tokens even though
// both may contain whitespace.
func splitWords(line string) ([]string, error) {
	var words []string
	runes := []rune(line)
	n := len(runes)
	i := 0
	for i < n {
		if runes[i] == ' ' || runes[i] == '\t' {
			i++
			continue
		}

		if runes[i] == '\'' {
			j := i + 1
			for j < n && runes[j] != '\'' {
				j++
			}
			if j >= n || j == i+1 || j > i+2 {
				return nil, ErrUnterminatedChar
			}
			words = append(words, string(runes[i:j+1]))
			i = j + 1
			continue
		}

		if runes[i] == '$' && i+1 < n && runes[i+1] == '(' {
			j := i + 2
			for j < n && runes[j] != ')' {
				j++
			}
			if j >= n {
				return nil, ErrMalformedDecl
			}
			words = append(words, string(runes[i:j+1]))
			i = j + 1
			continue
		}

		j := i
		for j < n && runes[j] != ' ' && runes[j] != '\t' {
			j++
		}
		words = append(words, string(runes[i:j]))
		i = j
	}
	return words, nil
}

// checkNumericToken validates range for tokens that look like a bare
// decimal integer literal; every other token (register, label, mnemonic,
// character literal, $(...) expression) is left for the translator.
func checkNumericToken(tok string) error {
	if tok == "" {
		return nil
	}
	digits := tok
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return nil
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return nil // not a bare decimal literal
		}
	}
	_, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return ErrNumericOverflow
	}
	return nil
}
