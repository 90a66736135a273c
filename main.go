package main

import "simplegpt/cmd"

func main() {
	cmd.Execute()
}
