package main

import (
	"os"

	"socialfeed/commands"
)

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command line and exits with its status.
func RealMain() {
	exit(commands.HandleCommand(os.Args[1:]))
}
