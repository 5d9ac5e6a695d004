package main

import (
	"os"

	"github.com/trebuchet-org/proxy-deploy/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
