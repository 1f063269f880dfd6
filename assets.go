// Package gigglit embeds the web front end's templates and static assets.
package gigglit

import "embed"

// In dev mode assets are read from disk instead so edits show up on reload.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
