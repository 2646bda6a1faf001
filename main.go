package main

import (
	"os"

	"github.com/NITESH-8/logsift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
