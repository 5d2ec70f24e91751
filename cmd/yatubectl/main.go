package main

import "github.com/madina-zvezda/yatube/cmd/yatubectl/commands"

func main() {
	commands.Execute()
}
