// Package main provides the entry point for the collage-kit CLI.
package main

import "github.com/menta2k/collage-kit/internal/cli/cmd"

func main() {
	cmd.Execute()
}
