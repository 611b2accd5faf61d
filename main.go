package main

import "github.com/notargets/gomathieu/cmd"

func main() {
	cmd.Execute()
}
