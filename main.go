package main

import (
	"os"

	"github.com/abhisek/edugen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
