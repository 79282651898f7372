package main

import (
	"fmt"
	"os"

	"github.com/jedipunkz/fieldlens/cli"
	"github.com/jedipunkz/fieldlens/internal/logging"
)

func main() {
	err := cli.New().Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
