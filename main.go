package main

import "github.com/tranyenminhbd/docuflow/cmd"

func main() {
	cmd.Execute()
}
