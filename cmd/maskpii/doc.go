// Package maskpii provides the command-line interface for maskpii.
// It wires subcommands (mask, scan, clip, config, audit, ...), resolves flags
// against config files and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/maskpii/maskpii/cmd/maskpii"
//	func main() { maskpii.Execute() }
package maskpii
