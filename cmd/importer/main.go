package main

import "zkbugs/cmd/importer/commands"

func main() {
	commands.Execute()
}
