package main

import "insight/internal/cli"

func main() {
	cli.Execute()
}
