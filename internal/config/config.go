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

// Package config loads the named time windows and the jobs from a YAML file.
//
//	location: Europe/Rome
//	tick: 1s
//	windows:
//	  - name: office
//	    when: when weekday mon to fri, hour 9 to 17
//	jobs:
//	  - name: backup
//	    window: office
//	    every: 30m
//	    timeout: 5m
//	    retry: {number: 2, interval: 10s}
//	    command: ./backup.sh
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xgfone/scheda"
)

// EnvConfigFile is the environment variable naming the default config file.
const EnvConfigFile = "SCHEDA_CONFIG"

const defaultTick = time.Second

// Config is the validated configuration.
type Config struct {
	Location *time.Location
	Tick     time.Duration
	Windows  []Window
	Jobs     []Job
}

// Window is a named time window.
type Window struct {
	Name     string
	Schedule *scheda.Schedule
}

// Job is a shell command run periodically inside a time window.
type Job struct {
	Name    string
	Window  Window
	Every   time.Duration
	Timeout time.Duration
	Retry   Retry
	Command string
}

// Retry is the number of the retries after a failed run
// and the interval between two tries.
type Retry struct {
	Number   int
	Interval time.Duration
}

type fileConfig struct {
	Location string       `yaml:"location"`
	Tick     string       `yaml:"tick"`
	Windows  []fileWindow `yaml:"windows"`
	Jobs     []fileJob    `yaml:"jobs"`
}

type fileWindow struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`
}

type fileJob struct {
	Name    string    `yaml:"name"`
	Window  string    `yaml:"window"`
	When    string    `yaml:"when"`
	Every   string    `yaml:"every"`
	Timeout string    `yaml:"timeout"`
	Retry   fileRetry `yaml:"retry"`
	Command string    `yaml:"command"`
}

type fileRetry struct {
	Number   int    `yaml:"number"`
	Interval string `yaml:"interval"`
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read the config file")
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "invalid config file '%s'", path)
	}
	return c, nil
}

// Parse parses and validates the YAML config data.
func Parse(data []byte) (c Config, err error) {
	var fc fileConfig
	if err = yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode the config")
	}

	if c.Location, err = LoadLocation(fc.Location); err != nil {
		return Config{}, err
	}

	c.Tick = defaultTick
	if fc.Tick != "" {
		if c.Tick, err = parseDuration("tick", fc.Tick); err != nil {
			return Config{}, err
		} else if c.Tick <= 0 {
			return Config{}, errors.Errorf("tick must be a positive duration, but got '%s'", fc.Tick)
		}
	}

	c.Windows = make([]Window, 0, len(fc.Windows))
	for i, fw := range fc.Windows {
		name := strings.TrimSpace(fw.Name)
		if name == "" {
			return Config{}, errors.Errorf("windows[%d]: missing name", i)
		} else if _, ok := c.Window(name); ok {
			return Config{}, errors.Errorf("windows[%d]: duplicate window '%s'", i, name)
		}

		sched, err := scheda.Parse(fw.When)
		if err != nil {
			return Config{}, errors.Wrapf(err, "window '%s'", name)
		}
		c.Windows = append(c.Windows, Window{Name: name, Schedule: sched})
	}

	c.Jobs = make([]Job, 0, len(fc.Jobs))
	seen := make(map[string]struct{}, len(fc.Jobs))
	for i, fj := range fc.Jobs {
		job, err := c.job(fj)
		if err != nil {
			return Config{}, errors.WithMessagef(err, "jobs[%d]", i)
		} else if _, ok := seen[job.Name]; ok {
			return Config{}, errors.Errorf("jobs[%d]: duplicate job '%s'", i, job.Name)
		}

		seen[job.Name] = struct{}{}
		c.Jobs = append(c.Jobs, job)
	}

	return c, nil
}

func (c Config) job(fj fileJob) (job Job, err error) {
	job.Name = strings.TrimSpace(fj.Name)
	job.Command = strings.TrimSpace(fj.Command)
	switch {
	case job.Name == "":
		return Job{}, errors.New("missing name")
	case job.Command == "":
		return Job{}, errors.Errorf("job '%s': missing command", job.Name)
	case fj.Window != "" && fj.When != "":
		return Job{}, errors.Errorf("job '%s': window and when are exclusive", job.Name)
	}

	if fj.Window != "" {
		var ok bool
		if job.Window, ok = c.Window(fj.Window); !ok {
			return Job{}, errors.Errorf("job '%s': no window named '%s'", job.Name, fj.Window)
		}
	} else if fj.When != "" {
		sched, err := scheda.Parse(fj.When)
		if err != nil {
			return Job{}, errors.Wrapf(err, "job '%s'", job.Name)
		}
		job.Window = Window{Name: job.Name, Schedule: sched}
	}

	if fj.Every != "" {
		if job.Every, err = parseDuration("every", fj.Every); err != nil {
			return Job{}, errors.WithMessagef(err, "job '%s'", job.Name)
		} else if job.Every < 0 {
			return Job{}, errors.Errorf("job '%s': every must not be negative", job.Name)
		}
	}

	if fj.Timeout != "" {
		if job.Timeout, err = parseDuration("timeout", fj.Timeout); err != nil {
			return Job{}, errors.WithMessagef(err, "job '%s'", job.Name)
		}
	}

	if job.Retry.Number = fj.Retry.Number; job.Retry.Number < 0 {
		return Job{}, errors.Errorf("job '%s': retry number must not be negative", job.Name)
	}
	if fj.Retry.Interval != "" {
		if job.Retry.Interval, err = parseDuration("retry interval", fj.Retry.Interval); err != nil {
			return Job{}, errors.WithMessagef(err, "job '%s'", job.Name)
		} else if job.Retry.Interval < 0 {
			return Job{}, errors.Errorf("job '%s': retry interval must not be negative", job.Name)
		}
	}

	return job, nil
}

// Window returns the window named name.
func (c Config) Window(name string) (Window, bool) {
	for _, w := range c.Windows {
		if w.Name == name {
			return w, true
		}
	}
	return Window{}, false
}

// LoadLocation returns the location named name, which defaults to UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid location '%s'", name)
	}
	return loc, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s '%s'", field, value)
	}
	return d, nil
}
