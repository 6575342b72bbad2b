// Package report renders search results as text, tables and JSON, writes
// the report file and compares found roots against reference values.
package report
