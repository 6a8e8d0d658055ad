package workerbundle

import (
	"encoding/base64"
	"encoding/json"
	"sort"
)

// Symbols replaced in the worker entry script at bundle time.
const (
	SymbolIcon    = "__ICON__"
	SymbolVersion = "__VERSION__"
)

// emptyLiteral is the value of a page symbol whose page was not discovered.
const emptyLiteral = `""`

// PageKey binds a page name to the symbol that embeds it.
type PageKey struct {
	Page   string
	Symbol string
}

// WellKnownPages are the pages the worker entry script references.
var WellKnownPages = []PageKey{
	{Page: "panel", Symbol: "__PANEL_HTML_CONTENT__"},
	{Page: "login", Symbol: "__LOGIN_HTML_CONTENT__"},
	{Page: "error", Symbol: "__ERROR_HTML_CONTENT__"},
	{Page: "secrets", Symbol: "__SECRETS_HTML_CONTENT__"},
}

// BuildConstants maps a symbol to the JavaScript literal that replaces it.
type BuildConstants map[string]string

// Symbols returns the symbol names in sorted order.
func (c BuildConstants) Symbols() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstantInjector builds the BuildConstants for a set of pages.
type ConstantInjector struct {
	keys []PageKey
}

// NewConstantInjector creates a ConstantInjector for keys.
// With no keys, WellKnownPages is used.
func NewConstantInjector(keys ...PageKey) *ConstantInjector {
	if len(keys) == 0 {
		keys = WellKnownPages
	}
	return &ConstantInjector{keys: keys}
}

// Inject returns a literal for every page key, the icon, and the version.
// A page missing from pages maps to "" so the script never sees an
// undefined symbol.
func (ci *ConstantInjector) Inject(pages *PageSet, icon []byte, version string) BuildConstants {
	consts := make(BuildConstants, len(ci.keys)+2)
	for _, key := range ci.keys {
		consts[key.Symbol] = lookupPage(pages, key.Page).literal()
	}
	consts[SymbolIcon] = jsString(base64.StdEncoding.EncodeToString(icon))
	consts[SymbolVersion] = jsString(version)
	return consts
}

// Unreferenced returns discovered pages that no key embeds, in discovery order.
func (ci *ConstantInjector) Unreferenced(pages *PageSet) []string {
	if pages == nil {
		return nil
	}
	known := make(map[string]bool, len(ci.keys))
	for _, key := range ci.keys {
		known[key.Page] = true
	}

	var unused []string
	for _, name := range pages.Order {
		if !known[name] {
			unused = append(unused, name)
		}
	}
	return unused
}

// pageLiteral is either a discovered page's asset or the absent marker (nil).
type pageLiteral struct {
	asset *CompressedAsset
}

func lookupPage(pages *PageSet, name string) pageLiteral {
	return pageLiteral{asset: pages.Get(name)}
}

func (p pageLiteral) present() bool {
	return p.asset != nil
}

func (p pageLiteral) literal() string {
	if !p.present() {
		return emptyLiteral
	}
	return jsString(p.asset.Payload)
}

// jsString quotes s as a JSON string, which is also a valid JavaScript literal.
func jsString(s string) string {
	b, _ := json.Marshal(s) // marshaling a string cannot fail
	return string(b)
}
