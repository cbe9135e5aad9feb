// Package migrations embeds the portal schema for golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
