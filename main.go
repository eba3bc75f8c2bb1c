package main

import "github.com/theirongolddev/salestable/cmd"

func main() {
	cmd.Execute()
}
