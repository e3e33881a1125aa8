package main

import "github.com/jmehdipour/email-tracker/cmd"

func main() {
	cmd.Execute()
}
