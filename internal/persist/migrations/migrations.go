// Package migrations embeds the SQL schema for the world_snapshots and
// object_snapshots tables, applied via goose the same way the teacher's
// internal/db/migrations package does (referenced from
// internal/db/migrate.go's goose.SetBaseFS(migrations.FS)).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
