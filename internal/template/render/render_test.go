package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baasman/cakecutter/internal/template/model"
)

func testContext(t *testing.T) model.Context {
	t.Helper()
	ctx, err := model.ParseContext([]byte(`{
		"project_name": "demo",
		"name": "World",
		"full_name": "Jane Q Doe",
		"port": 8080,
		"debug": true,
		"nothing": null,
		"ratio": 0.5,
		"tags": ["cli", "go"],
		"author": {"email": "jane@example.com"}
	}`))
	require.NoError(t, err)
	return ctx
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no placeholders", "plain text, no braces", "plain text, no braces"},
		{"single brace kept", "func() { return }", "func() { return }"},
		{"simple", "Hello {{name}}", "Hello World"},
		{"whitespace", "Hello {{   name   }}!", "Hello World!"},
		{"scoped", "{{ cakecutter.project_name }}", "demo"},
		{"number", "port={{ port }}", "port=8080"},
		{"fraction", "{{ ratio }}", "0.5"},
		{"bool", "{{ debug }}", "true"},
		{"null", "[{{ nothing }}]", "[]"},
		{"array index", "{{ tags.1 }}", "go"},
		{"whole array", "{{ tags }}", `["cli","go"]`},
		{"nested", "{{ author.email }}", "jane@example.com"},
		{"multiple", "{{ name }}/{{ project_name }}", "World/demo"},
		{"multiline", "a\n{{ name }}\nb", "a\nWorld\nb"},
		{"upper filter", "{{ name | upper }}", "WORLD"},
		{"chained filters", "{{ full_name | lower | snake }}", "jane_q_doe"},
		{"kebab filter", "{{ full_name | kebab }}", "jane-q-doe"},
		{"camel filter", "{{ full_name | camel }}", "JaneQDoe"},
		{"slugify filter", "{{ full_name | slugify }}", "jane-q-doe"},
		{"title filter", "{{ project_name | title }}", "Demo"},
		{"comment removed", "a{# note #}b", "ab"},
		{"raw block", "{% raw %}{{ name }}{% endraw %}", "{{ name }}"},
		{"raw block with tags inside", "{% raw %}{% if %}{% endraw %}!", "{% if %}!"},
	}

	r := NewRenderer()
	data := testContext(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Render(context.Background(), tt.input, data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errType RenderErrorType
		line    int
	}{
		{"undefined variable", "Hello {{ missing_key }}", UndefinedVariable, 1},
		{"undefined nested", "{{ author.phone }}", UndefinedVariable, 1},
		{"undefined on later line", "a\nb\n{{ missing }}", UndefinedVariable, 3},
		{"unknown filter", "{{ name | shout }}", UnknownFilter, 1},
		{"unclosed placeholder", "{{ name", InvalidSyntax, 1},
		{"empty placeholder", "{{ }}", InvalidSyntax, 1},
		{"invalid reference", "{{ name + 1 }}", InvalidSyntax, 1},
		{"empty filter", "{{ name | }}", InvalidSyntax, 1},
		{"unclosed comment", "{# note", InvalidSyntax, 1},
		{"unsupported tag", "{% if debug %}x{% endif %}", InvalidSyntax, 1},
		{"raw without endraw", "{% raw %}{{ name }}", InvalidSyntax, 1},
	}

	r := NewRenderer()
	data := testContext(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(context.Background(), tt.input, data)
			require.Error(t, err)

			var renderErr *RenderError
			require.True(t, errors.As(err, &renderErr), "expected *RenderError, got %T", err)
			assert.Equal(t, tt.errType, renderErr.Type)
			assert.Equal(t, tt.line, renderErr.Line)
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	data := testContext(t)
	input := "{{ name }} {{ tags }} {{ author }} {{ cakecutter.port }}"

	first, err := r.Render(context.Background(), input, data)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := r.Render(context.Background(), input, data)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRender_ScopeShadowedByContextKey(t *testing.T) {
	data := model.Context{
		"cakecutter": model.Object(map[string]model.Value{"name": model.String("inner")}),
		"name":       model.String("outer"),
	}

	result, err := NewRenderer().Render(context.Background(), "{{ cakecutter.name }}", data)
	require.NoError(t, err)
	assert.Equal(t, "inner", result)
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().Render(ctx, "{{ name }}", testContext(t))
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, Cancelled, renderErr.Type)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	r := NewRenderer()

	assert.NoError(t, r.Validate("{{ anything | upper }} {# c #}"))
	assert.Error(t, r.Validate("{{ anything | nope }}"))
	assert.Error(t, r.Validate("{{ unclosed"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hello Big World", title("hello big world"))
	assert.Equal(t, "", title(""))
}
