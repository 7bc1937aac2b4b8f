// Package schema holds the table and column names of the database.
//
// Stores build SQL from these definitions instead of string literals, so a
// renamed column fails to compile rather than failing at query time.
package schema
