package main

import "github.com/trillsocial/trill/cmd"

func main() {
	cmd.Execute()
}
