package main

import (
	"os"

	"github.com/wonny/aurum/cmd/aurum/commands"
)

// main is the entry point for the Aurum CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/aurum [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
