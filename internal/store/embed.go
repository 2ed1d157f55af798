package store

import "embed"

//go:embed sql/schema/*.sql
var Schema embed.FS

// SchemaDir is the path within Schema holding migration files.
const SchemaDir = "sql/schema"
