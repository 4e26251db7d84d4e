package main

import (
	"fmt"
	"io"
	"os"

	rlerrors "repolens/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err and, for coded errors, the suggested fixes.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var coded *rlerrors.Error
	if !asCoded(err, &coded) || len(coded.SuggestedFixes) == 0 {
		return
	}
	fmt.Fprintln(w, "Suggested fixes:")
	for _, fix := range coded.SuggestedFixes {
		switch {
		case fix.Command != "":
			fmt.Fprintf(w, "  $ %s  # %s\n", fix.Command, fix.Description)
		case fix.Path != "":
			fmt.Fprintf(w, "  - %s (%s)\n", fix.Description, fix.Path)
		default:
			fmt.Fprintf(w, "  - %s\n", fix.Description)
		}
	}
}
