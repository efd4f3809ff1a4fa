package main

import "github.com/zjrosen/soundpad/cmd"

func main() {
	cmd.Execute()
}
