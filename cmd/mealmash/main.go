package main

import "mealmash/internal/cli"

func main() {
	cli.Execute()
}
