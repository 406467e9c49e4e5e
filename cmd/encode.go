// cmd/encode.go

package main

import (
	"fmt"

	"AvePNG/pkg/compress"
	"AvePNG/pkg/crypt"
	"AvePNG/pkg/png"
	"AvePNG/pkg/utils"

	"github.com/urfave/cli/v2"
)

func encodeFlags() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "hide a message in a new chunk appended to a PNG file",
		ArgsUsage: "FILE TYPE MESSAGE",
		Action:    encode,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write to this file instead of rewriting FILE in place",
			},
			&cli.StringFlag{
				Name:  "compress",
				Usage: "compression algorithm for the message (lz4, zstd, none)",
				Value: "none",
			},
			&cli.StringFlag{
				Name:  "passphrase",
				Usage: "seal the message with this passphrase (AES-256-GCM)",
			},
		},
	}
}

// sealMessage applies the compress-then-seal envelope. The chunk
// payload stays opaque bytes for the codec; revealMessage reverses the
// envelope given the same options.
func sealMessage(ctx *cli.Context, msg []byte) ([]byte, error) {
	if algr := ctx.String("compress"); algr != "" && algr != "none" {
		c := compress.NewCompressor(algr)
		if c == nil {
			return nil, fmt.Errorf("unknown compress algorithm: %s", algr)
		}
		var err error
		msg, err = compress.Pack(c, msg)
		if err != nil {
			return nil, err
		}
	}
	if pass := ctx.String("passphrase"); pass != "" {
		return crypt.NewPassphraseEncryptor(pass).Encrypt(msg)
	}
	return msg, nil
}

func revealMessage(ctx *cli.Context, payload []byte) ([]byte, error) {
	if pass := ctx.String("passphrase"); pass != "" {
		var err error
		payload, err = crypt.NewPassphraseEncryptor(pass).Decrypt(payload)
		if err != nil {
			return nil, err
		}
	}
	if algr := ctx.String("compress"); algr != "" && algr != "none" {
		c := compress.NewCompressor(algr)
		if c == nil {
			return nil, fmt.Errorf("unknown compress algorithm: %s", algr)
		}
		return compress.Unpack(c, payload)
	}
	return payload, nil
}

func encode(ctx *cli.Context) error {
	setLoggerLevel(ctx)
	if ctx.Args().Len() < 3 {
		return fmt.Errorf("FILE, TYPE and MESSAGE are needed")
	}
	file := ctx.Args().Get(0)
	typeText := ctx.Args().Get(1)
	message := ctx.Args().Get(2)

	ct, err := png.ParseChunkType(typeText)
	if err != nil {
		return err
	}
	if !ct.IsValid() {
		logger.Warnf("chunk type %s has its reserved bit set; strict readers may reject the file", ct)
	}
	if ct.IsCritical() {
		logger.Warnf("chunk type %s is critical; decoders that do not know it will give up", ct)
	}

	payload, err := sealMessage(ctx, []byte(message))
	if err != nil {
		return err
	}

	output := ctx.String("output")
	if output != "" && output != file && utils.Exists(output) {
		logger.Warnf("%s exists and will be overwritten", output)
	}
	write := func() error {
		p, err := loadPng(file)
		if err != nil {
			return err
		}
		p.AppendChunk(png.NewChunk(ct, payload))
		if output == "" {
			return savePng(file, p)
		}
		return savePng(output, p)
	}
	if output == "" || output == file {
		err = withFileLock(file, write)
	} else {
		err = write()
	}
	if err != nil {
		return err
	}
	logger.Infof("embedded %d bytes in a %s chunk", len(payload), ct)
	return nil
}
