package main

import "github.com/mcoot/sportfinder/internal/cli"

func main() {
	cli.Execute()
}
