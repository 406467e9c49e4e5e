// cmd/print.go

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func printFlags() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "render the chunks of PNG files in their diagnostic form",
		ArgsUsage: "FILE ...",
		Action:    printPng,
	}
}

func printPng(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("FILE is needed")
	}
	for i := 0; i < ctx.Args().Len(); i++ {
		file := ctx.Args().Get(i)
		p, err := loadPng(file)
		if err != nil {
			return err
		}
		if ctx.Args().Len() > 1 {
			fmt.Printf("%s:\n", file)
		}
		fmt.Print(p.String())
	}
	return nil
}
