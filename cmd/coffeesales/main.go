package main

import "github.com/dataroast/coffeesales/cmd/coffeesales/commands"

func main() {
	commands.Execute()
}
