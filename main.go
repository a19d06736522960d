// Package main is the entry point for the mutconf CLI.
package main

import "gooze.dev/pkg/mutconf/cmd"

func main() {
	cmd.Execute()
}
