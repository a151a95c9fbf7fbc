// Package main is the entry point for the castdeck application.
package main

import (
	"github.com/castdeck/castdeck/cmd"
	"github.com/castdeck/castdeck/config"
	"github.com/castdeck/castdeck/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
