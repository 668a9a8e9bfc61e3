package main

import (
	"log"
	"os"

	"github.com/custodia-labs/polaris-o365-go/internal/cli"
	"github.com/custodia-labs/polaris-o365-go/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	store, err := config.NewStore("")
	if err != nil {
		log.Printf("failed to create config store: %v", err)
		return 1
	}
	cli.SetStore(store)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
