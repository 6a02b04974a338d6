package main

import "github.com/sjzsdu/uiforge/cmd"

func main() {
	cmd.Execute()
}
