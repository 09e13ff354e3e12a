package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/baasman/cakecutter/internal/logging"
	"github.com/baasman/cakecutter/internal/template/model"
)

// Renderer substitutes placeholders in template text.
type Renderer interface {
	// Render replaces every {{ expr }} placeholder in text with its value
	// from data. The result depends only on text and data.
	Render(ctx context.Context, text string, data model.Context) (string, error)

	// Validate checks placeholder syntax and filter names without a context.
	Validate(text string) error
}

// DefaultRenderer implements Renderer.
type DefaultRenderer struct {
	filters map[string]FilterFunc
}

// NewRenderer creates a renderer with the built-in filters.
func NewRenderer() Renderer {
	return &DefaultRenderer{filters: defaultFilters()}
}

// Render substitutes placeholders in text.
func (r *DefaultRenderer) Render(ctx context.Context, text string, data model.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RenderError{Type: Cancelled, Message: "rendering cancelled", Cause: err}
	}

	if !strings.Contains(text, "{") {
		return text, nil
	}

	tokens, err := tokenize(text)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.Grow(len(text))
	for _, tok := range tokens {
		if tok.kind == tokenText {
			out.WriteString(tok.text)
			continue
		}

		value, err := r.evaluate(tok, data)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
	}

	logger := logging.GetLogger("render")
	logger.Trace().
		Int("input_bytes", len(text)).
		Int("output_bytes", out.Len()).
		Int("tokens", len(tokens)).
		Msg("Rendered template text")

	return out.String(), nil
}

// Validate checks syntax and filter names.
func (r *DefaultRenderer) Validate(text string) error {
	tokens, err := tokenize(text)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if tok.kind != tokenExpr {
			continue
		}
		expr, err := parseExpression(tok)
		if err != nil {
			return err
		}
		for _, name := range expr.filters {
			if _, ok := r.filters[name]; !ok {
				return newRenderError(UnknownFilter, fmt.Sprintf("unknown filter: %s", name), tok.raw, tok.line)
			}
		}
	}
	return nil
}

// evaluate resolves one placeholder.
func (r *DefaultRenderer) evaluate(tok token, data model.Context) (string, error) {
	expr, err := parseExpression(tok)
	if err != nil {
		return "", err
	}

	value, ok := lookup(data, expr.path)
	if !ok {
		return "", newRenderError(UndefinedVariable,
			fmt.Sprintf("undefined variable: %s", expr.path), tok.raw, tok.line)
	}

	result := value.Text()
	for _, name := range expr.filters {
		filter, ok := r.filters[name]
		if !ok {
			return "", newRenderError(UnknownFilter, fmt.Sprintf("unknown filter: %s", name), tok.raw, tok.line)
		}
		result = filter(result)
	}
	return result, nil
}

// lookup resolves a dotted path. The whole context is also reachable under
// the "cakecutter" scope unless the context defines that key itself.
func lookup(data model.Context, path string) (model.Value, bool) {
	if v, ok := data.Lookup(path); ok {
		return v, true
	}
	if _, shadowed := data[model.ScopeName]; shadowed {
		return model.Null(), false
	}
	if path == model.ScopeName {
		return model.Object(data), true
	}
	if rest, ok := strings.CutPrefix(path, model.ScopeName+"."); ok {
		return data.Lookup(rest)
	}
	return model.Null(), false
}

// expression is a parsed placeholder: a dotted path and a filter chain.
type expression struct {
	path    string
	filters []string
}

func parseExpression(tok token) (expression, error) {
	parts := strings.Split(tok.text, "|")

	path := strings.TrimSpace(parts[0])
	if !isValidPath(path) {
		return expression{}, newRenderError(InvalidSyntax,
			fmt.Sprintf("invalid variable reference %q", path), tok.raw, tok.line)
	}

	expr := expression{path: path}
	for _, part := range parts[1:] {
		name := strings.TrimSpace(part)
		if !isIdentifier(name) {
			return expression{}, newRenderError(InvalidSyntax,
				fmt.Sprintf("invalid filter %q", name), tok.raw, tok.line)
		}
		expr.filters = append(expr.filters, name)
	}
	return expr, nil
}

func isValidPath(path string) bool {
	if path == "" {
		return false
	}
	for _, seg := range strings.Split(path, ".") {
		if !isIdentifier(seg) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
