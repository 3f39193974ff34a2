package main

import "github.com/mvp-joe/proofdex/internal/cli"

func main() {
	cli.Execute()
}
