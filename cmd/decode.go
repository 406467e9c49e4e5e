// cmd/decode.go

package main

import (
	"fmt"
	"unicode/utf8"

	"AvePNG/pkg/png"

	"github.com/urfave/cli/v2"
)

func decodeFlags() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "print the message hidden in the first chunk of a type",
		ArgsUsage: "FILE TYPE",
		Action:    decode,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "compress",
				Usage: "compression algorithm the message was encoded with",
				Value: "none",
			},
			&cli.StringFlag{
				Name:  "passphrase",
				Usage: "passphrase the message was sealed with",
			},
		},
	}
}

func decode(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 2 {
		return fmt.Errorf("FILE and TYPE are needed")
	}
	file := ctx.Args().Get(0)
	typeText := ctx.Args().Get(1)
	if _, err := png.ParseChunkType(typeText); err != nil {
		return err
	}

	p, err := loadPng(file)
	if err != nil {
		return err
	}
	c := p.ChunkByType(typeText)
	if c == nil {
		return fmt.Errorf("%s: no %s chunk: %w", file, typeText, png.ErrNotFound)
	}

	msg, err := revealMessage(ctx, c.Payload())
	if err != nil {
		return err
	}
	if !utf8.Valid(msg) {
		return fmt.Errorf("%s chunk in %s: %w", typeText, file, png.ErrNotText)
	}
	fmt.Println(string(msg))
	return nil
}
