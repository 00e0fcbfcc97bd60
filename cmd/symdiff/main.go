package main

import (
	"os"

	"github.com/njchilds90/symdiff/cmd/symdiff/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
