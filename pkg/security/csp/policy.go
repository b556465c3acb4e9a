// Package csp builds Content-Security-Policy header values. The API
// itself only ever returns JSON, but the embedded Swagger UI serves
// HTML and scripts, so the two surfaces need different policies.
package csp

import (
	"fmt"
	"strings"
)

// Builder assembles a CSP policy directive by directive. Not safe for
// concurrent use; build policies once at startup and reuse the string.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

// NewBuilder returns an empty policy builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// DefaultSrc sets the default-src directive, the fallback for all fetch
// directives that are not set explicitly.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	b.directives["default-src"] = sources
	return b
}

// ScriptSrc sets the script-src directive.
func (b *Builder) ScriptSrc(sources ...string) *Builder {
	b.directives["script-src"] = sources
	return b
}

// StyleSrc sets the style-src directive.
func (b *Builder) StyleSrc(sources ...string) *Builder {
	b.directives["style-src"] = sources
	return b
}

// ImgSrc sets the img-src directive.
func (b *Builder) ImgSrc(sources ...string) *Builder {
	b.directives["img-src"] = sources
	return b
}

// FontSrc sets the font-src directive.
func (b *Builder) FontSrc(sources ...string) *Builder {
	b.directives["font-src"] = sources
	return b
}

// ConnectSrc sets the connect-src directive, which governs fetch and
// XHR targets. Swagger UI needs blob: here to load the spec.
func (b *Builder) ConnectSrc(sources ...string) *Builder {
	b.directives["connect-src"] = sources
	return b
}

// FrameAncestors sets the frame-ancestors directive. 'none' blocks
// clickjacking by forbidding any embedding.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	b.directives["frame-ancestors"] = sources
	return b
}

// FormAction sets the form-action directive.
func (b *Builder) FormAction(sources ...string) *Builder {
	b.directives["form-action"] = sources
	return b
}

// BaseUri sets the base-uri directive.
func (b *Builder) BaseUri(sources ...string) *Builder {
	b.directives["base-uri"] = sources
	return b
}

// ObjectSrc sets the object-src directive.
func (b *Builder) ObjectSrc(sources ...string) *Builder {
	b.directives["object-src"] = sources
	return b
}

// ReportOnly switches the policy to report-only mode, which changes the
// header name returned by HeaderName but not the policy value.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// directiveOrder fixes the serialization order so policies compare
// stable in logs and tests.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Build serializes the policy: directives joined by "; ", sources
// within a directive joined by spaces. An empty builder yields "".
func (b *Builder) Build() string {
	if len(b.directives) == 0 {
		return ""
	}
	var parts []string
	for _, directive := range directiveOrder {
		if sources, ok := b.directives[directive]; ok && len(sources) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", directive, strings.Join(sources, " ")))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy belongs in:
// Content-Security-Policy, or the Report-Only variant when report-only
// mode is on.
func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// StrictPolicy is the default for the JSON API: nothing may load,
// nothing may embed it. Browsers ignore most of it on JSON responses,
// but it hardens any error page a proxy might inject HTML into.
func StrictPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseUri("'self'").
		FormAction("'self'")
}

// SwaggerUIPolicy relaxes the strict policy just enough for the bundled
// Swagger UI: inline scripts and styles, data: images, blob: spec
// loading. Everything else stays locked down.
func SwaggerUIPolicy() *Builder {
	return NewBuilder().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		StyleSrc("'self'", "'unsafe-inline'", "https://cdn.jsdelivr.net").
		ImgSrc("'self'", "data:", "https:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'", "blob:").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseUri("'self'").
		ObjectSrc("'none'")
}
