package main

import "github.com/aalvaropc/distmap/internal/cli"

func main() {
	cli.Execute()
}
