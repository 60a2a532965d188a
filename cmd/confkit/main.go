package main

import (
	"fmt"
	"os"

	"github.com/confkit/confkit/pkg/style"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
