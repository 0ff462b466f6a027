package main

import "github.com/CrazyPigHead/t-reader/cmd"

func main() {
	cmd.Execute()
}
