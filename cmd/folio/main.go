package main

import (
	"os"

	"github.com/rustyeddy/folio/cmd/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
