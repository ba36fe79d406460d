package main

import (
	"os"

	"github.com/stellar-burgers/burgerctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
