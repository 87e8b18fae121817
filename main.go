package main

import (
	"os"

	"github.com/quizpix/quizpix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
