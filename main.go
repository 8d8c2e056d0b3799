package main

import "github.com/encodeous/asabr/cmd"

func main() {
	cmd.Execute()
}
