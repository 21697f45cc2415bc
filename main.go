package main

import (
	"os"

	"github.com/scan-io-git/diagval/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
