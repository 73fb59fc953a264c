// main is the entry point for the agrilens CLI.
package main

import (
	"github.com/huangsam/agrilens/cmd"
	"github.com/huangsam/agrilens/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
