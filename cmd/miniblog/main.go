package main

import "miniblog/internal/cmd"

func main() {
	cmd.Run()
}
