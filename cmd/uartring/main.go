package main

import "github.com/luhtfiimanal/go-uart-ring/cmd/uartring/cmd"

func main() {
	cmd.Execute()
}
