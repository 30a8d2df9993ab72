package main

import "github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/cli"

func main() {
	cli.Main()
}
