// Package main is the modeline command.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/modeline/modeline/cmd"
)

func main() {
	cmd.Execute()
	atexit.Exit(0)
}
