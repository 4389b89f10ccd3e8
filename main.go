// Package main is the entry point for the python-case CLI.
package main

import "github.com/simondoesstuff/python-case/cmd"

func main() {
	cmd.Execute()
}
