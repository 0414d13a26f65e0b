package main

import (
	"github.com/stleox/seetrace/pkg/cmd"
)

func main() {
	cmd.Execute()
}
