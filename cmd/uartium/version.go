package main

import (
	"fmt"
	"os"

	"github.com/uartium/uartium/internal/ui/panels"
	"github.com/uartium/uartium/internal/update"
)

func runVersion(repo string) {
	fmt.Printf("uartium version %s\n", panels.Version)

	if panels.Version == "dev" {
		fmt.Println("Development build, update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(panels.Version, repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"uartium update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}

func runUpdate(repo string) {
	fmt.Printf("uartium version %s\n", panels.Version)

	rel, err := update.Apply(panels.Version, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated to v%s\n", rel.Version)
	if rel.ReleaseNotes != "" {
		fmt.Println(rel.ReleaseNotes)
	}
}
