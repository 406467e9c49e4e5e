// cmd/remove.go

package main

import (
	"fmt"

	"AvePNG/pkg/png"

	"github.com/urfave/cli/v2"
)

func removeFlags() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "remove the first chunk of a type and rewrite the file",
		ArgsUsage: "FILE TYPE",
		Action:    remove,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to this file instead of rewriting FILE in place",
			},
		},
	}
}

func remove(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 2 {
		return fmt.Errorf("FILE and TYPE are needed")
	}
	file := ctx.Args().Get(0)
	typeText := ctx.Args().Get(1)
	if _, err := png.ParseChunkType(typeText); err != nil {
		return err
	}

	output := ctx.String("output")
	write := func() error {
		p, err := loadPng(file)
		if err != nil {
			return err
		}
		c, err := p.RemoveFirstChunk(typeText)
		if err != nil {
			return fmt.Errorf("%s: no %s chunk: %w", file, typeText, err)
		}
		logger.Infof("removed a %s chunk (%d bytes)", typeText, c.Length())
		if output == "" {
			return savePng(file, p)
		}
		return savePng(output, p)
	}
	if output == "" || output == file {
		return withFileLock(file, write)
	}
	return write()
}
