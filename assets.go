// Package catalogconsole embeds the console's templates and static assets.
package catalogconsole

import "embed"

// In dev mode (IsDev=true) the router reads these trees from disk instead.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
