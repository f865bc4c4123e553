// Package pathwarden provides the command-line interface for the Pathwarden
// tool. It configures subcommands (scan, audit, check, browse, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/pathwarden/pathwarden/cmd/pathwarden"
//	func main() { pathwarden.Execute() }
package pathwarden
