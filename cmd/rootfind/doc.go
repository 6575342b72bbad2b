// Package rootfind provides the command-line interface for rootfind. It
// configures subcommands (find, report, history, functions, config), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/rootfind/rootfind/cmd/rootfind"
//	func main() { rootfind.Execute() }
package rootfind
