package main

import (
	"rhcos-prune/internal/cli"
)

func main() {
	cli.Execute()
}
