package main

import (
	"os"

	"github.com/researchaccelerator-hub/video-aggregator/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
