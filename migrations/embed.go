// Package migrations embeds the schema steps for every supported driver.
// Each driver has its own directory named after the driver.
package migrations

import "embed"

//go:embed sqlite3/*.sql postgres/*.sql
var FS embed.FS
