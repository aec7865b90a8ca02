package main

import "github.com/notargets/blockcoupled/cmd"

func main() {
	cmd.Execute()
}
