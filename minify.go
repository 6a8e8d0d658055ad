package workerbundle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// ScriptMinifier defines the contract for page script minification.
// Implementations must keep identifiers and statements intact: the script
// runs client-side and is debugged as written.
type ScriptMinifier interface {
	MinifyScript(ctx context.Context, src string) (string, error)
}

// MarkupMinifier defines the contract for resolved page markup minification.
type MarkupMinifier interface {
	MinifyHTML(ctx context.Context, src string) (string, error)
}

// esbuildScriptMinifier strips whitespace and comments with esbuild.
// Identifier mangling and syntax compression stay off.
type esbuildScriptMinifier struct{}

// NewScriptMinifier returns the default whitespace-only script minifier.
func NewScriptMinifier() ScriptMinifier {
	return esbuildScriptMinifier{}
}

func (esbuildScriptMinifier) MinifyScript(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: false,
		MinifySyntax:      false,
		LogLevel:          api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return "", errors.New(formatMessages(result.Errors))
	}

	return strings.TrimRight(string(result.Code), "\n"), nil
}

// markupMinifier wraps a tdewolff minifier configured for embedded pages:
// whitespace collapsed, attribute quotes dropped where safe, inline CSS
// minified. Document and end tags are kept; inline scripts are left as is.
type markupMinifier struct {
	m *minify.M
}

// NewMarkupMinifier returns the default HTML minifier.
func NewMarkupMinifier() MarkupMinifier {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepComments:        true,
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          false,
		KeepWhitespace:      false,
	})
	return &markupMinifier{m: m}
}

func (t *markupMinifier) MinifyHTML(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := t.m.String("text/html", src)
	if err != nil {
		return "", fmt.Errorf("minifying HTML: %w", err)
	}
	return out, nil
}

// formatMessages renders esbuild diagnostics as "file:line:col: text".
func formatMessages(msgs []api.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if loc := msg.Location; loc != nil {
			lines = append(lines, fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, msg.Text))
			continue
		}
		lines = append(lines, msg.Text)
	}
	return strings.Join(lines, "\n")
}

// Compile-time interface checks.
var (
	_ ScriptMinifier = esbuildScriptMinifier{}
	_ MarkupMinifier = (*markupMinifier)(nil)
)
