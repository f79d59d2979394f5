package sql

import (
	"embed"
)

// Migrations holds the DDL applied by db.ApplyMigrations, in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/select_observations.sql
var SelectObservations string

//go:embed queries/delete_observations.sql
var DeleteObservations string

//go:embed queries/insert_load.sql
var InsertLoad string

//go:embed queries/latest_load.sql
var LatestLoad string
