// Package migrations contains the schema changes of the SQL store drivers.
// Each file uses init() to call migration.Register(); importing this
// package is enough to make them known to the runner.
package migrations
