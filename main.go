package main

import "github.com/mouse-blink/jscov/cmd"

func main() {
	cmd.Execute()
}
