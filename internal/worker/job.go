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

package worker

import (
	"context"
	"time"

	"github.com/xgfone/scheda"
)

// Runner is used to represent the runner of the job.
type Runner func(context.Context) (data []byte, err error)

// Retry represents a retry policy.
type Retry struct {
	Number   int           // The maximum number of the retries after the first failure
	Interval time.Duration // The interval between two tries
}

// Job represents a job which only runs inside its time window.
type Job struct {
	// Required
	Name string
	Run  Runner

	// Optional
	Window  *scheda.Schedule // nil means that the job may run at any time.
	Every   time.Duration    // ZERO means that the job runs on every tick inside the window.
	Timeout time.Duration    // ZERO means that the timeout of the executor is used.

	// Retry is used only while the tick time is still inside the window.
	Retry Retry
}

// JobBuilder is used to build a job.
type JobBuilder struct {
	name    string
	window  *scheda.Schedule
	every   time.Duration
	timeout time.Duration
	retry   Retry
}

// NewJob returns a new job builder.
func NewJob(name string) JobBuilder {
	return JobBuilder{}.Name(name)
}

// Name returns a new job builder with the name.
func (jb JobBuilder) Name(name string) JobBuilder {
	if name == "" {
		panic("the job name must not be empty")
	}
	jb.name = name
	return jb
}

// Window returns a new job builder with the time window.
func (jb JobBuilder) Window(window *scheda.Schedule) JobBuilder {
	if window == nil {
		panic("the window must not be nil")
	}
	jb.window = window
	return jb
}

// Every returns a new job builder with the interval between two runs.
func (jb JobBuilder) Every(interval time.Duration) JobBuilder {
	if interval < 0 {
		panic("the interval must not be a negative duration")
	}
	jb.every = interval
	return jb
}

// Timeout returns a new job builder with the timeout.
func (jb JobBuilder) Timeout(timeout time.Duration) JobBuilder {
	jb.timeout = timeout
	return jb
}

// Retry returns a new job builder with the retry number and the retry interval.
func (jb JobBuilder) Retry(number int, interval time.Duration) JobBuilder {
	if number < 0 {
		panic("the retry number must not be a negative integer")
	} else if interval < 0 {
		panic("the retry interval must not be a negative duration")
	}
	jb.retry = Retry{Number: number, Interval: interval}
	return jb
}

// Runner returns a new job.
func (jb JobBuilder) Runner(run Runner) Job {
	if run == nil {
		panic("the runner must not be nil")
	}
	return Job{
		Name: jb.name,
		Run:  run,

		Window:  jb.window,
		Every:   jb.every,
		Timeout: jb.timeout,
		Retry:   jb.retry,
	}
}
