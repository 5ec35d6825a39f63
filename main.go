package main

import "github.com/user/trim-timeline-cli/cmd"

func main() {
	cmd.Execute()
}
