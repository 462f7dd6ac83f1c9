// Copyright 2026 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/xgfone/go-tools/v7/lifecycle"
	"github.com/xgfone/klog/v3"

	"github.com/xgfone/scheda/cmd/internal/logging"
)

var version = "0.1.0"

func main() {
	err := newApp(os.Stdout).Run(os.Args)
	if err != nil {
		klog.Ef(err, "The program exits.")
	}

	lifecycle.Stop()
	if err != nil {
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "scheda"
	app.Version = version
	app.Usage = "Check and use the human-readable time windows"
	app.Writer = w
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "The level of the logs: debug, info, warn or error",
			EnvVars: []string{"SCHEDA_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "The file to write the logs into instead of stderr, which is rotated by size",
		},
	}
	app.Before = func(c *cli.Context) error {
		return logging.Init(c.String("log-level"), c.String("log-file"))
	}
	app.Commands = []*cli.Command{
		getCheckCommand(),
		getMatchCommand(),
		getWindowsCommand(),
		getRunCommand(),
	}
	return app
}
