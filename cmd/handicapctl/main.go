package main

import "github.com/mcoot/golfhandicap/internal/cli"

func main() {
	cli.Execute()
}
