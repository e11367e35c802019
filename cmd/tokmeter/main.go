package main

import (
	"os"

	"github.com/avelis/tokmeter/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
