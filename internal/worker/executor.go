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

// Package worker runs jobs periodically, but only inside their time windows.
package worker

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ResultHook is the hook to handle the result of the job run.
type ResultHook func(Result)

// Result is the result of a job run.
type Result struct {
	Job   Job
	Start time.Time // The tick time when the job is started
	Next  time.Time // The earliest time when the job may run again
	Cost  time.Duration
	Data  []byte
	Err   error

	Tries int // The number of the runs, including the retries
}

// Task represents a job task.
type Task struct {
	Job     Job
	Prev    time.Time     // The last time to be executed
	Next    time.Time     // The next time to be due
	Cost    time.Duration // The cost duration to execute the job last time
	Running bool          // Indicate whether the job is running
}

type task struct {
	Job     Job
	Prev    time.Time
	Next    time.Time
	cost    int64
	running uint32
}

func (t *task) IsRunning() bool    { return atomic.LoadUint32(&t.running) == 1 }
func (t *task) SetCost(cost int64) { atomic.StoreInt64(&t.cost, cost) }
func (t *task) SetRunning(running bool) {
	if running {
		atomic.StoreUint32(&t.running, 1)
	} else {
		atomic.StoreUint32(&t.running, 0)
	}
}

func (t *task) Task() Task {
	return Task{
		Job:     t.Job,
		Prev:    t.Prev,
		Next:    t.Next,
		Cost:    time.Duration(atomic.LoadInt64(&t.cost)),
		Running: t.IsRunning(),
	}
}

type tasks []*task

func (ts tasks) Len() int           { return len(ts) }
func (ts tasks) Less(i, j int) bool { return ts[j].Next.After(ts[i].Next) }
func (ts tasks) Swap(i, j int)      { ts[i], ts[j] = ts[j], ts[i] }

// Executor represents a job executor.
//
// A job is due when its next time has been reached. On every tick, a due job
// starts if the tick time, converted to the location of the executor, falls
// inside the job window and the job is not running. A due job outside its
// window stays due, so it starts on the first tick inside the window.
type Executor struct {
	exit    chan struct{}
	started uint32
	clock   func() time.Time
	hooks   []ResultHook
	running sync.WaitGroup

	lock  sync.RWMutex
	loc   *time.Location
	tick  time.Duration
	timeo time.Duration
	tasks tasks
}

// NewExecutor returns a new job executor, which ticks once every second
// and matches the windows in the local time.
func NewExecutor() *Executor {
	return &Executor{
		exit:  make(chan struct{}),
		clock: time.Now,
		loc:   time.Local,
		tick:  time.Second,
		tasks: make(tasks, 0, 16),
	}
}

// SetTimeout resets the timeout of the jobs without their own timeout.
func (e *Executor) SetTimeout(timeout time.Duration) {
	e.lock.Lock()
	e.timeo = timeout
	e.lock.Unlock()
}

// SetLocation resets the location in which the job windows are matched.
func (e *Executor) SetLocation(loc *time.Location) {
	if loc == nil {
		panic("the location must not be nil")
	}

	e.lock.Lock()
	e.loc = loc
	e.lock.Unlock()
}

// SetTick resets the interval between two ticks, which must be set
// before the executor is started.
func (e *Executor) SetTick(tick time.Duration) {
	if tick <= 0 {
		panic("the tick must be a positive duration")
	}

	e.lock.Lock()
	e.tick = tick
	e.lock.Unlock()
}

// AppendResultHooks appends some result hooks,
// which must be called before the executor is started.
func (e *Executor) AppendResultHooks(hooks ...ResultHook) {
	e.hooks = append(e.hooks, hooks...)
}

// Schedule adds a job, which is due immediately.
func (e *Executor) Schedule(job Job) (err error) {
	if job.Name == "" {
		return fmt.Errorf("the job name must not be empty")
	} else if job.Run == nil {
		return fmt.Errorf("the job '%s' has no runner", job.Name)
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	for _, t := range e.tasks {
		if t.Job.Name == job.Name {
			return fmt.Errorf("the job named '%s' has been added", job.Name)
		}
	}

	e.tasks = append(e.tasks, &task{Job: job})
	sort.Stable(e.tasks)
	return nil
}

// CancelJobs cancels the jobs by the given names.
//
// A running job is not interrupted, but it won't run again.
func (e *Executor) CancelJobs(names ...string) {
	if len(names) == 0 {
		return
	}

	e.lock.Lock()
	e.tasks = slices.DeleteFunc(e.tasks, func(t *task) bool {
		return slices.Contains(names, t.Job.Name)
	})
	e.lock.Unlock()
}

// GetTask returns the job task by the name.
func (e *Executor) GetTask(name string) (task Task, ok bool) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	for _, t := range e.tasks {
		if t.Job.Name == name {
			return t.Task(), true
		}
	}
	return
}

// GetAllTasks returns the tasks of all the jobs, ordered by their next time.
func (e *Executor) GetAllTasks() []Task {
	e.lock.RLock()
	defer e.lock.RUnlock()

	tasks := make([]Task, len(e.tasks))
	for i, t := range e.tasks {
		tasks[i] = t.Task()
	}
	return tasks
}

// Tick starts the due jobs whose windows contain now, and returns the number
// of the started jobs, which run in their own goroutines with ctx.
func (e *Executor) Tick(ctx context.Context, now time.Time) (started int) {
	e.lock.Lock()
	defer e.lock.Unlock()

	local := now.In(e.loc)
	for _, task := range e.tasks {
		if task.Next.After(now) {
			break
		}

		if task.IsRunning() || !task.Job.Window.Matches(local) {
			continue
		}

		timeout := task.Job.Timeout
		if timeout <= 0 {
			timeout = e.timeo
		}

		next := now.Add(task.Job.Every)
		task.Prev = now
		task.Next = next
		task.SetRunning(true)

		started++
		e.running.Add(1)
		go e.runTask(ctx, task, now, next, timeout, e.loc)
	}

	if started > 0 {
		sort.Stable(e.tasks)
	}
	return
}

// WaitTasks waits until all the started jobs finish.
func (e *Executor) WaitTasks() { e.running.Wait() }

// Run runs the executor in the current goroutine until ctx is done,
// then waits for the running jobs to finish.
//
// An executor runs only once, so Run returns immediately if it has been
// started already.
func (e *Executor) Run(ctx context.Context) {
	if !atomic.CompareAndSwapUint32(&e.started, 0, 1) {
		return
	}

	e.lock.RLock()
	tick := e.tick
	e.lock.RUnlock()

	ticker := time.NewTicker(tick)
	defer func() {
		ticker.Stop()
		e.running.Wait()
		close(e.exit)
	}()

	e.Tick(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.Tick(ctx, now)
		}
	}
}

// Start starts the executor in the background goroutine.
func (e *Executor) Start(ctx context.Context) { go e.Run(ctx) }

// Wait waits until the executor started by Start or Run exits.
func (e *Executor) Wait() { <-e.exit }

func (e *Executor) runTask(ctx context.Context, task *task, now, next time.Time,
	timeout time.Duration, loc *time.Location) {
	defer e.running.Done()
	defer task.SetRunning(false)

	inWindow := func() bool { return task.Job.Window.Matches(e.clock().In(loc)) }

	start := time.Now()
	data, tries, err := retryToRunJob(ctx, task.Job, timeout, inWindow)
	cost := time.Since(start)
	task.SetCost(int64(cost))

	if len(e.hooks) > 0 {
		result := Result{
			Job:   task.Job,
			Start: now,
			Next:  next,
			Cost:  cost,
			Data:  data,
			Err:   err,
			Tries: tries,
		}

		for _, hook := range e.hooks {
			hook(result)
		}
	}
}

// retryToRunJob runs the job, and retries it after a failure at most
// job.Retry.Number times while ctx is not done and inWindow reports true.
func retryToRunJob(ctx context.Context, job Job, timeout time.Duration,
	inWindow func() bool) (data []byte, tries int, err error) {
	for number := job.Retry.Number; ; number-- {
		tries++
		if data, err = runJob(ctx, job, timeout); err == nil || number <= 0 {
			return
		}

		if job.Retry.Interval > 0 {
			timer := time.NewTimer(job.Retry.Interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}

		if !inWindow() {
			return
		}
	}
}

func runJob(ctx context.Context, job Job, timeout time.Duration) (
	data []byte, err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("panic: %v", e)
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return job.Run(ctx)
}
