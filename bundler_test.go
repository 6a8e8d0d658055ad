package workerbundle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testEntry = `import { connect } from "cloudflare:sockets";

declare const __VERSION__: string;
declare const __PANEL_HTML_CONTENT__: string;

interface Env {
  name: string;
}

export default {
  async fetch(_req: Request, env: Env): Promise<Response> {
    const socket = typeof connect;
    return new Response(__VERSION__ + __PANEL_HTML_CONTENT__ + env.name + socket);
  },
};
`

func writeEntry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worker.ts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing entry: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestEsbuildBundler - Bundling with compile-time constants
// ---------------------------------------------------------------------------

func TestEsbuildBundler(t *testing.T) {
	t.Parallel()

	res, err := NewBundler().Bundle(context.Background(), BundleRequest{
		EntryPoint: writeEntry(t, testEntry),
		Defines: BuildConstants{
			SymbolVersion:            `"2.5.1"`,
			"__PANEL_HTML_CONTENT__": `""`,
		},
		External: []string{"cloudflare:sockets"},
		Target:   "esnext",
		OutFile:  "worker.js",
	})
	if err != nil {
		t.Fatalf("Bundle() unexpected error: %v", err)
	}

	if !strings.Contains(res.Code, "2.5.1") {
		t.Errorf("Bundle() output missing injected version:\n%s", res.Code)
	}
	for _, symbol := range []string{"__VERSION__", "__PANEL_HTML_CONTENT__", "interface Env"} {
		if strings.Contains(res.Code, symbol) {
			t.Errorf("Bundle() output still contains %q:\n%s", symbol, res.Code)
		}
	}
	if !strings.Contains(res.Code, "cloudflare:sockets") {
		t.Errorf("Bundle() should leave the external import in place:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "export") {
		t.Errorf("Bundle() output is not an ES module:\n%s", res.Code)
	}
	if res.SourceMap != "" {
		t.Error("Bundle() returned a source map without being asked")
	}
}

func TestEsbuildBundler_SourceMap(t *testing.T) {
	t.Parallel()

	res, err := NewBundler().Bundle(context.Background(), BundleRequest{
		EntryPoint: writeEntry(t, "export const answer: number = 42;\n"),
		Target:     "es2022",
		OutFile:    "worker.js",
		SourceMap:  true,
	})
	if err != nil {
		t.Fatalf("Bundle() unexpected error: %v", err)
	}
	if res.SourceMap == "" {
		t.Fatal("Bundle() returned no source map")
	}
	if !strings.Contains(res.Code, "sourceMappingURL=worker.js.map") {
		t.Errorf("Bundle() output does not link the source map:\n%s", res.Code)
	}
}

func TestEsbuildBundler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entry    string
		target   string
		external []string
		wantText string
	}{
		{
			name:     "unresolved import",
			entry:    `import { x } from "./missing";` + "\nexport default x;\n",
			target:   "esnext",
			wantText: "missing",
		},
		{
			name:     "platform module not marked external",
			entry:    `import { connect } from "cloudflare:sockets";` + "\nexport default connect;\n",
			target:   "esnext",
			wantText: "cloudflare:sockets",
		},
		{
			name:     "syntax error",
			entry:    "export default {\n",
			target:   "esnext",
			wantText: "worker.ts:",
		},
		{
			name:     "unsupported target",
			entry:    "export default 1;\n",
			target:   "es5000",
			wantText: "es5000",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewBundler().Bundle(context.Background(), BundleRequest{
				EntryPoint: writeEntry(t, tt.entry),
				External:   tt.external,
				Target:     tt.target,
			})
			if !errors.Is(err, ErrBundle) {
				t.Fatalf("Bundle() error = %v, want ErrBundle", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Bundle() error %q should mention %q", err, tt.wantText)
			}
		})
	}
}

func TestEsbuildBundler_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBundler().Bundle(ctx, BundleRequest{EntryPoint: "unused.ts", Target: "esnext"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Bundle() error = %v, want context.Canceled", err)
	}
}
