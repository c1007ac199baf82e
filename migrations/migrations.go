// Package migrations embeds the SQL migration files shipped with the binary.
package migrations

import "embed"

//go:embed sqlite
var FS embed.FS
