package main

import (
	"os"

	"github.com/cognisivelabs/go-axiom/cmd/axiom/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
