package main

import "github.com/papapumpkin/starfolio/cmd"

func main() {
	cmd.Execute()
}
