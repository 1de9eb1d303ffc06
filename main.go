package main

import (
	"github.com/xl0/nvml-tool/cmd"
)

func main() {
	cmd.Execute()
}
