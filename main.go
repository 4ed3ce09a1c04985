// Command ctpostman is a terminal trainer for HTTP verbs against a live demo API.
package main

import "ctpostman/internal/cli"

func main() {
	cli.Execute()
}
