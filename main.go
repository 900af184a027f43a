package main

import "github.com/brogergvhs/scanfr/cmd"

func main() {
	cmd.Execute()
}
