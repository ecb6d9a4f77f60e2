package main

import (
	"os"

	"github.com/Akbari06/WellWorld/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
