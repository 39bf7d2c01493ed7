package main

import (
	"os"

	"github.com/cartastcg/cartas-tray/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
