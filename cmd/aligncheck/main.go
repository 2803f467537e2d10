// Package main provides the entry point for the aligncheck CLI tool.
package main

import (
	"github.com/isawnyu/aligncheck/cmd/aligncheck/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
