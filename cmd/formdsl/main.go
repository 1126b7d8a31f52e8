package main

import (
	"context"
	"log"

	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-formdsl/cmd/formdsl/commands"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("formdsl: ")

	ctx := context.Background()
	cli.MainContext(ctx, commands.Root(ctx))
}
