// Package migrations holds the row store schema.
package migrations

import "embed"

// FS contains the *.up.sql files applied by cmd/migrate.
//
//go:embed *.up.sql
var FS embed.FS
