package main

import (
	"fmt"
	"os"

	"github.com/jgoizueta/grass-gis/pkg/style"
)

func main() {
	style.AutoColor()
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
