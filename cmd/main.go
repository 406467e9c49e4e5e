// cmd/main.go

package main

import (
	"fmt"
	"os"

	"AvePNG/pkg/utils"
	"AvePNG/pkg/version"

	"github.com/google/gops/agent"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var logger = utils.GetLogger("avepng")

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"debug", "v"},
			Usage:   "enable debug log",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only warning and errors",
		},
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "enable trace log",
		},
		&cli.BoolFlag{
			Name:  "no-agent",
			Usage: "disable the gops agent",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "path of log file when running in background",
		},
	}
}

func setLoggerLevel(c *cli.Context) {
	if c.Bool("trace") {
		utils.SetLogLevel(logrus.TraceLevel)
	} else if c.Bool("verbose") {
		utils.SetLogLevel(logrus.DebugLevel)
	} else if c.Bool("quiet") {
		utils.SetLogLevel(logrus.WarnLevel)
	} else {
		utils.SetLogLevel(logrus.InfoLevel)
	}
	if path := c.String("log"); path != "" {
		utils.SetOutFile(path)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = &cli.BoolFlag{
		Name: "version", Aliases: []string{"V"},
		Usage: "print only the version",
	}
	return &cli.App{
		Name:                 "avepng",
		Usage:                "hide, reveal and strip messages in PNG chunks",
		Version:              version.Version(),
		EnableBashCompletion: true,
		Flags:                globalFlags(),
		Before: func(c *cli.Context) error {
			if !c.Bool("no-agent") {
				go func() {
					for port := 6070; port < 6100; port++ {
						_ = agent.Listen(agent.Options{Addr: fmt.Sprintf("127.0.0.1:%d", port)})
					}
				}()
			}
			return nil
		},
		Commands: []*cli.Command{
			encodeFlags(),
			decodeFlags(),
			removeFlags(),
			printFlags(),
			scanFlags(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Fatalf("%s", err)
	}
}
