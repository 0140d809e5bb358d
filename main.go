package main

import "bluebgg/cmd"

func main() {
	cmd.Execute()
}
