package main

import "dynix/cmd"

func main() {
	cmd.Execute()
}
