package main

import (
	"os"

	"github.com/wonny/vctrank/cmd/vctrank/commands"
)

// main is the entry point for the vctrank CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/vctrank [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
