package main

import (
	"os"

	"github.com/mtnworks/gt-client/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
