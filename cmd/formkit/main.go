package main

import (
	"os"

	"github.com/hashicorp-forge/formkit/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
