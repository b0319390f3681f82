package main

import "github.com/mager/bloom/cmd"

func main() {
	cmd.Execute()
}
