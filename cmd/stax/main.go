package main

import (
	"fmt"
	"os"

	"github.com/brimdata/stax/cmd/stax/root"
)

func main() {
	if err := root.New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
