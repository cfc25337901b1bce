package main

import "github.com/okian/traineval/internal/cli"

func main() {
	cli.Execute()
}
