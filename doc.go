// Package workerbundle builds a single-file browser worker from a tree of
// templated HTML pages and a worker entry script.
//
// # Quick Start
//
//	b := workerbundle.New()
//	result, err := b.Build(ctx, workerbundle.BuildInput{
//	    AssetDir:   "src/assets",
//	    AssetOnly:  []string{"error"},
//	    IconPath:   "src/assets/favicon.ico",
//	    EntryPoint: "src/worker.ts",
//	    Version:    "1.2.3",
//	    External:   []string{"cloudflare:sockets"},
//	    OutputDir:  "dist",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outputs.ScriptPath, result.Outputs.ArchivePath)
//
// # Build Pipeline
//
//  1. Template resolution: every page directory's index.html gets __VERSION__
//     replaced; full pages also get __STYLE__ (raw style.css in a <style>
//     element) and __SCRIPT__ (whitespace-minified script.js).
//  2. Compression: the resolved markup is minified, gzipped, and base64 encoded.
//  3. Constant injection: each well-known page payload, the icon, and the
//     version become compile-time defines; absent pages resolve to "".
//  4. Bundling: esbuild bundles the entry script for the browser as one ES module.
//  5. Packaging: the output gets a build header and is written as a plain
//     script and as the sole entry of a zip archive.
//
// Any failure aborts the build before outputs are written.
//
// # Page Payloads
//
// A worker decodes an embedded page with:
//
//	const bytes = Uint8Array.from(atob(__PANEL_HTML_CONTENT__), c => c.charCodeAt(0));
//	const html = new Response(new Blob([bytes]).stream()
//	    .pipeThrough(new DecompressionStream("gzip"))).text();
//
// DecodeAsset performs the same decoding in Go.
package workerbundle
