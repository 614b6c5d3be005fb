package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/yukidoke/tsugi/pkg/app"
)

//go:embed game
var embeddedGame embed.FS

func main() {
	application := app.New(embeddedGame)
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
