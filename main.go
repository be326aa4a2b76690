// Package main is the entry point for the videoplayer application.
package main

import (
	"github.com/fujifruity/videoplayer/cmd"
	"github.com/fujifruity/videoplayer/config"
	"github.com/fujifruity/videoplayer/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
