package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

// fatal reports a failed command in the user's language and exits with status 1.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "jot: %s: %v\n", msg, err)
	os.Exit(1)
}
