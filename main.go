// SPDX-License-Identifier: MPL-2.0

// Package main is the entry point for the components CLI.
package main

import cmd "github.com/consigliere/components/cmd/components"

func main() {
	cmd.Execute()
}
