package migrations

import "embed"

// Files holds the SQLite schema applied in filename order by db.OpenSQLite.
//
//go:embed *.sql
var Files embed.FS
