// Package main provides the entry point for the rectify CLI tool.
package main

import (
	"github.com/agentstation/rectify/cmd/rectify/cmd"
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
