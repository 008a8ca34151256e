package main

import "phxdiag/internal/commands"

func main() {
	commands.Execute()
}
