package main

import (
	"fmt"
	"os"

	"daily-tracker/internal/cli"
	"daily-tracker/internal/config"
)

func main() {
	factory := NewRepositoryFactory(getEnvironment())

	root := cli.NewRootCommand(config.NewLoader(), factory.OpenAPI)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
