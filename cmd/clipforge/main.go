package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	// Ctrl-C during serve or --wait is not worth an error line.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "clipforge: %v\n", err)
	}
	os.Exit(1)
}
