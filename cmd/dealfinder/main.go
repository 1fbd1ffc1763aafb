package main

import (
	"fmt"
	"os"

	"github.com/dylangamachefl/grocery-deal-finder/cmd/dealfinder/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
