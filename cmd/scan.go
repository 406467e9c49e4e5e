// cmd/scan.go

package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"AvePNG/pkg/png"
	"AvePNG/pkg/utils"

	"github.com/urfave/cli/v2"
)

func scanFlags() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "look for embedded chunks in a tree of PNG files",
		ArgsUsage: "DIR",
		Action:    scan,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "only report chunks of this type (default: ancillary private chunks)",
			},
		},
	}
}

// isCarrier marks chunk types that a stock image pipeline would never
// write: ancillary and private, the usual home of embedded messages.
func isCarrier(c *png.Chunk) bool {
	t := c.Type()
	return !t.IsCritical() && !t.IsPublic()
}

func scan(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 1 {
		return fmt.Errorf("DIR is needed")
	}
	dir := ctx.Args().Get(0)
	typeText := ctx.String("type")
	if typeText != "" {
		if _, err := png.ParseChunkType(typeText); err != nil {
			return err
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".png") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	progress, bar := utils.NewDynProgressBar("scanning: ", ctx.Bool("quiet"))
	bar.SetTotal(int64(len(files)), false)

	var found int
	for _, path := range files {
		p, err := loadPng(path)
		if err != nil {
			logger.Warnf("%s", err)
			bar.Increment()
			continue
		}
		for _, c := range p.Chunks() {
			text := c.Type().String()
			if typeText != "" {
				if text != typeText {
					continue
				}
			} else if !isCarrier(c) {
				continue
			}
			found++
			logger.Infof("%s: %s chunk, %d bytes, crc %08x", path, text, c.Length(), c.CRC())
		}
		bar.Increment()
	}
	bar.SetTotal(0, true)
	progress.Wait()

	logger.Infof("scanned %d files, found %d chunks", len(files), found)
	return nil
}
