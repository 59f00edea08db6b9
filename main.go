// github-insights builds analytics reports from the GitHub API and serves them
// from the command line or as MCP tools.
package main

import "github.com/naka-gawa/github-insights/cmd"

// Version can be overridden at build time using:
//
//	go build -ldflags="-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
