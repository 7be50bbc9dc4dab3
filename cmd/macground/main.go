package main

import "github.com/k1LoW/macground/cmd"

func main() {
	cmd.Execute()
}
