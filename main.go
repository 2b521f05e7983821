package main

import (
	"os"

	"github.com/BryanGrisales/PURR-Fect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
