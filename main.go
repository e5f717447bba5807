package main

import (
	"os"

	"github.com/vodila/vodila/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
