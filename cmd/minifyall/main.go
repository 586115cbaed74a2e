package main

import "minifyall/cmd/minifyall/cmd"

func main() {
	cmd.Execute()
}
