package render

import (
	"strings"
)

// tokenKind classifies a piece of template text.
type tokenKind int

const (
	tokenText tokenKind = iota
	tokenExpr
)

// token is a literal run of text or a placeholder expression.
type token struct {
	kind tokenKind
	// text is the literal text, or the trimmed expression for tokenExpr.
	text string
	// raw is the full source of a placeholder including its delimiters.
	raw  string
	line int
}

const (
	exprOpen     = "{{"
	exprClose    = "}}"
	commentOpen  = "{#"
	commentClose = "#}"
	tagOpen      = "{%"
	tagClose     = "%}"
)

// tokenize splits text into literal and expression tokens.
// Comments are dropped and raw blocks become literal text.
func tokenize(text string) ([]token, error) {
	var tokens []token
	var literal strings.Builder
	line := 1
	literalLine := 1

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenText, text: literal.String(), line: literalLine})
			literal.Reset()
		}
		literalLine = line
	}

	i := 0
	for i < len(text) {
		next := strings.IndexByte(text[i:], '{')
		if next < 0 || i+next+1 >= len(text) {
			literal.WriteString(text[i:])
			line += strings.Count(text[i:], "\n")
			break
		}
		start := i + next
		literal.WriteString(text[i:start])
		line += strings.Count(text[i:start], "\n")

		switch text[start : start+2] {
		case exprOpen:
			end := strings.Index(text[start+2:], exprClose)
			if end < 0 {
				return nil, newRenderError(InvalidSyntax, "unclosed placeholder", snippet(text[start:]), line)
			}
			raw := text[start : start+2+end+2]
			expr := strings.TrimSpace(text[start+2 : start+2+end])
			if expr == "" {
				return nil, newRenderError(InvalidSyntax, "empty placeholder", raw, line)
			}
			flush()
			tokens = append(tokens, token{kind: tokenExpr, text: expr, raw: raw, line: line})
			line += strings.Count(raw, "\n")
			literalLine = line
			i = start + len(raw)

		case commentOpen:
			end := strings.Index(text[start+2:], commentClose)
			if end < 0 {
				return nil, newRenderError(InvalidSyntax, "unclosed comment", snippet(text[start:]), line)
			}
			comment := text[start : start+2+end+2]
			line += strings.Count(comment, "\n")
			i = start + len(comment)

		case tagOpen:
			body, consumed, err := readRawBlock(text[start:], line)
			if err != nil {
				return nil, err
			}
			literal.WriteString(body)
			line += strings.Count(text[start:start+consumed], "\n")
			i = start + consumed

		default:
			literal.WriteByte('{')
			i = start + 1
		}
	}
	flush()
	return tokens, nil
}

// readRawBlock parses "{% raw %}BODY{% endraw %}" at the start of text.
// It returns BODY and the number of bytes consumed.
func readRawBlock(text string, line int) (string, int, error) {
	openEnd := strings.Index(text, tagClose)
	if openEnd < 0 {
		return "", 0, newRenderError(InvalidSyntax, "unclosed tag", snippet(text), line)
	}
	tag := strings.TrimSpace(text[len(tagOpen):openEnd])
	if tag != "raw" {
		return "", 0, newRenderError(InvalidSyntax, "unsupported tag "+quoteTag(tag), text[:openEnd+len(tagClose)], line)
	}

	bodyStart := openEnd + len(tagClose)
	search := bodyStart
	for {
		rel := strings.Index(text[search:], tagOpen)
		if rel < 0 {
			return "", 0, newRenderError(InvalidSyntax, "raw block without endraw", snippet(text), line)
		}
		closeStart := search + rel
		closeEnd := strings.Index(text[closeStart:], tagClose)
		if closeEnd < 0 {
			return "", 0, newRenderError(InvalidSyntax, "unclosed tag", snippet(text[closeStart:]), line)
		}
		inner := strings.TrimSpace(text[closeStart+len(tagOpen) : closeStart+closeEnd])
		if inner == "endraw" {
			return text[bodyStart:closeStart], closeStart + closeEnd + len(tagClose), nil
		}
		search = closeStart + len(tagOpen)
	}
}

func quoteTag(tag string) string {
	return "\"" + tag + "\""
}

// snippet shortens text for error messages.
func snippet(text string) string {
	const max = 40
	if nl := strings.IndexByte(text, '\n'); nl >= 0 && nl < max {
		return text[:nl]
	}
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}
