package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"rinna/internal/store"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCodeFor(err))
	}
}

// Exit codes distinguish caller mistakes from infrastructure failures so
// scripts can branch on them.
func exitCodeFor(err error) int {
	switch store.Classify(err) {
	case "validation":
		return 2
	case "not_found":
		return 3
	case "conflict":
		return 4
	default:
		return 1
	}
}
