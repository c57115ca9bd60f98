// Package version carries build metadata injected through -ldflags and a
// cobra subcommand that prints it.
package version
