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
	"bytes"
	"context"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/xgfone/go-tools/v7/lifecycle"
	"github.com/xgfone/klog/v3"

	"github.com/xgfone/scheda"
	"github.com/xgfone/scheda/internal/config"
	"github.com/xgfone/scheda/internal/worker"
)

func getRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the shell commands periodically inside their windows",
		ArgsUsage: "[COMMAND]",
		Flags: []cli.Flag{
			configFlag,
			tzFlag,
			&cli.StringFlag{
				Name:  "when",
				Usage: "The window of the command given as the arguments",
			},
			&cli.DurationFlag{
				Name:  "every",
				Usage: "The interval between two runs of the command given as the arguments",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "The default timeout of the commands",
			},
			&cli.IntFlag{
				Name:  "retry",
				Usage: "The number of the retries of the command given as the arguments after a failure",
			},
			&cli.DurationFlag{
				Name:  "retry-interval",
				Usage: "The interval between two tries of the command given as the arguments",
			},
			&cli.DurationFlag{
				Name:  "tick",
				Usage: "The interval to check whether the jobs are due (default: 1s)",
			},
		},
		Action: func(c *cli.Context) error {
			exe, err := newExecutor(c)
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			lifecycle.Register(func() { stop(); exe.Wait() })

			klog.K("jobs", len(exe.GetAllTasks())).Infof("start the executor")
			exe.Start(ctx)
			exe.Wait()
			klog.K("jobs", len(exe.GetAllTasks())).Infof("stop the executor")
			return nil
		},
	}
}

func newExecutor(c *cli.Context) (*worker.Executor, error) {
	var conf config.Config
	if path := c.String("config"); path != "" {
		var err error
		if conf, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	exe := worker.NewExecutor()
	exe.SetTimeout(c.Duration("timeout"))
	exe.AppendResultHooks(logResult)
	if conf.Tick > 0 {
		exe.SetTick(conf.Tick)
	}
	if tick := c.Duration("tick"); tick > 0 {
		exe.SetTick(tick)
	}

	loc := conf.Location
	if tz := c.String("tz"); tz != "" {
		var err error
		if loc, err = config.LoadLocation(tz); err != nil {
			return nil, err
		}
	}
	if loc != nil {
		exe.SetLocation(loc)
	}

	for _, job := range conf.Jobs {
		err := exe.Schedule(worker.Job{
			Name:    job.Name,
			Run:     newShellJobRunner(job.Command),
			Window:  job.Window.Schedule,
			Every:   job.Every,
			Timeout: job.Timeout,
			Retry:   worker.Retry{Number: job.Retry.Number, Interval: job.Retry.Interval},
		})
		if err != nil {
			return nil, err
		}
	}

	if cmd := strings.TrimSpace(strings.Join(c.Args().Slice(), " ")); cmd != "" {
		every, retry, interval := c.Duration("every"), c.Int("retry"), c.Duration("retry-interval")
		if every < 0 || retry < 0 || interval < 0 {
			return nil, errors.New("every, retry and retry-interval must not be negative")
		}

		builder := worker.NewJob("cli").Every(every).Retry(retry, interval)
		if when := c.String("when"); when != "" {
			sched, err := scheda.Parse(when)
			if err != nil {
				return nil, err
			}
			builder = builder.Window(sched)
		}

		if err := exe.Schedule(builder.Runner(newShellJobRunner(cmd))); err != nil {
			return nil, err
		}
	} else if c.String("when") != "" {
		return nil, errors.New("missing the command to run")
	}

	if len(exe.GetAllTasks()) == 0 {
		return nil, errors.New("no job to run")
	}
	return exe, nil
}

func logResult(r worker.Result) {
	log := klog.K("job", r.Job.Name).K("time", r.Start).K("cost", r.Cost)
	if r.Err == nil {
		log.K("next", r.Next).Infof("run the job")
	} else {
		log.E(r.Err).Errorf("failed to run the job")
	}
}

func newShellJobRunner(cmd string) worker.Runner {
	return func(ctx context.Context) (data []byte, err error) {
		cmd := exec.CommandContext(ctx, "/bin/sh", "-c", cmd)
		var output bytes.Buffer
		var errput bytes.Buffer
		cmd.Stdout = &output
		cmd.Stderr = &errput
		cmd.WaitDelay = time.Second

		if err = cmd.Run(); err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			} else if stderr := bytes.TrimSpace(errput.Bytes()); len(stderr) > 0 {
				err = errors.New(string(stderr))
			} else if stdout := bytes.TrimSpace(output.Bytes()); len(stdout) > 0 {
				err = errors.New(string(stdout))
			}
		} else {
			data = output.Bytes()
		}

		return
	}
}
