package main

import (
	"os"

	"github.com/klynch/notionctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
