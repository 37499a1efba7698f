// Package main is the entry point for the vacstats CLI.
package main

import (
	"os"

	"github.com/JonMunkholm/vacancystats/cmd/vacstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
