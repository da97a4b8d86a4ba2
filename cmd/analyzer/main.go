package main

import "upvotes_analyzer/cmd/analyzer/commands"

func main() {
	commands.Execute()
}
