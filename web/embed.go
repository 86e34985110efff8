// Package web embeds the review desk page templates and its stylesheet and
// toast script.
package web

import "embed"

// TemplatesFS holds the page and the HTMX partials (summary, tabs,
// expense_card, reject_dialog).
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds app.css and app.js, served under /static/.
//
//go:embed static/*
var StaticFS embed.FS
