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
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/xgfone/scheda"
	"github.com/xgfone/scheda/internal/config"
)

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "The YAML file declaring the windows and the jobs",
	EnvVars: []string{config.EnvConfigFile},
}

var atFlag = &cli.StringFlag{
	Name:  "at",
	Usage: "The RFC3339 time to check instead of the current time",
}

var tzFlag = &cli.StringFlag{
	Name:  "tz",
	Usage: "The location, such as Europe/Rome, whose wall clock is matched",
}

func getCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse the expressions and print their canonical forms",
		ArgsUsage: "EXPRESSION...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("missing the expression", 2)
			}

			for _, expr := range c.Args().Slice() {
				sched, err := scheda.Parse(expr)
				if err != nil {
					return cli.Exit(fmt.Sprintf("'%s': %s", expr, err), 2)
				}
				fmt.Fprintln(c.App.Writer, sched)
			}
			return nil
		},
	}
}

func getMatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Print whether the time falls inside the window, and exit with 1 if not",
		ArgsUsage: "EXPRESSION",
		Flags:     []cli.Flag{atFlag, tzFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expect exactly one expression", 2)
			}

			sched, err := scheda.Parse(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			now, err := getTime(c, nil)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			matched := sched.Matches(now)
			fmt.Fprintln(c.App.Writer, matched)
			if !matched {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func getWindowsCommand() *cli.Command {
	return &cli.Command{
		Name:  "windows",
		Usage: "List the configured windows and whether they are active",
		Flags: []cli.Flag{configFlag, atFlag, tzFlag},
		Action: func(c *cli.Context) error {
			if c.String("config") == "" {
				return cli.Exit("missing the config file", 2)
			}

			conf, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			now, err := getTime(c, conf.Location)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tACTIVE\tWHEN")
			for _, w := range conf.Windows {
				fmt.Fprintf(tw, "%s\t%t\t%s\n", w.Name, w.Schedule.Matches(now), w.Schedule)
			}
			return tw.Flush()
		},
	}
}

// getTime returns the time given by the flag --at, or the current time,
// converted to the location given by the flag --tz or else to loc.
// A nil loc keeps the location of the time.
func getTime(c *cli.Context, loc *time.Location) (now time.Time, err error) {
	now = time.Now()
	if at := c.String("at"); at != "" {
		if now, err = time.Parse(time.RFC3339, at); err != nil {
			return time.Time{}, errors.Wrap(err, "invalid --at")
		}
	}

	if tz := c.String("tz"); tz != "" {
		if loc, err = config.LoadLocation(tz); err != nil {
			return time.Time{}, err
		}
	}

	if loc != nil {
		now = now.In(loc)
	}
	return now, nil
}
