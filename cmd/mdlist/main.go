package main

import (
	"fmt"
	"os"

	"github.com/shodgson/mdlist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mdlist:", err)
		os.Exit(1)
	}
}
