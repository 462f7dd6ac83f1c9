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
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgfone/scheda"
)

func noop(context.Context) ([]byte, error) { return nil, nil }

func utc(hour, minute int) time.Time {
	// 2001-05-22 is a Tuesday.
	return time.Date(2001, time.May, 22, hour, minute, 0, 0, time.UTC)
}

func newTestExecutor() (*Executor, *[]Result) {
	var lock sync.Mutex
	results := new([]Result)

	exe := NewExecutor()
	exe.SetLocation(time.UTC)
	exe.AppendResultHooks(func(r Result) {
		lock.Lock()
		*results = append(*results, r)
		lock.Unlock()
	})
	return exe, results
}

func TestTasks(t *testing.T) {
	ts := tasks{
		&task{Job: Job{Name: "job4"}, Next: time.Unix(4, 0)},
		&task{Job: Job{Name: "job2"}, Next: time.Unix(2, 0)},
		&task{Job: Job{Name: "job1"}, Next: time.Unix(1, 0)},
		&task{Job: Job{Name: "job3"}, Next: time.Unix(3, 0)},
	}
	sort.Stable(ts)

	for i, task := range ts {
		assert.Equal(t, int64(i+1), task.Next.Unix())
	}
}

func TestCancelJobs(t *testing.T) {
	exe := NewExecutor()
	for _, name := range []string{"job1", "job2", "job3", "job4"} {
		require.NoError(t, exe.Schedule(NewJob(name).Every(time.Minute).Runner(noop)))
	}
	exe.CancelJobs("job2", "job4")

	tasks := exe.GetAllTasks()
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		switch name := task.Job.Name; name {
		case "job1", "job3":
		default:
			t.Errorf("unexpected job '%s'", name)
		}
	}

	_, ok := exe.GetTask("job2")
	assert.False(t, ok)
	_, ok = exe.GetTask("job3")
	assert.True(t, ok)
}

func TestScheduleDuplicate(t *testing.T) {
	exe := NewExecutor()
	require.NoError(t, exe.Schedule(NewJob("job").Runner(noop)))
	assert.Error(t, exe.Schedule(NewJob("job").Runner(noop)))
	assert.Error(t, exe.Schedule(Job{Name: "norunner"}))
	assert.Error(t, exe.Schedule(Job{Run: noop}))
}

func TestTickWindow(t *testing.T) {
	exe, results := newTestExecutor()
	job := NewJob("office").
		Window(scheda.MustParse("when weekday mon to fri, hour 9 to 17")).
		Every(time.Hour).
		Runner(func(context.Context) ([]byte, error) { return []byte("done"), nil })
	require.NoError(t, exe.Schedule(job))

	ctx := context.Background()
	assert.Equal(t, 0, exe.Tick(ctx, utc(8, 0)))
	assert.Equal(t, 0, exe.Tick(ctx, utc(8, 59)))

	assert.Equal(t, 1, exe.Tick(ctx, utc(9, 0)))
	exe.WaitTasks()
	assert.Equal(t, 0, exe.Tick(ctx, utc(9, 30)))
	assert.Equal(t, 1, exe.Tick(ctx, utc(10, 0)))
	exe.WaitTasks()

	// Due but outside the window.
	assert.Equal(t, 0, exe.Tick(ctx, utc(18, 0)))

	require.Len(t, *results, 2)
	assert.Equal(t, utc(9, 0), (*results)[0].Start)
	assert.Equal(t, utc(10, 0), (*results)[0].Next)
	assert.Equal(t, []byte("done"), (*results)[1].Data)
	assert.NoError(t, (*results)[1].Err)

	task, ok := exe.GetTask("office")
	require.True(t, ok)
	assert.Equal(t, utc(10, 0), task.Prev)
	assert.Equal(t, utc(11, 0), task.Next)
	assert.False(t, task.Running)
}

func TestTickLocation(t *testing.T) {
	exe, _ := newTestExecutor()
	exe.SetLocation(time.FixedZone("UTC+2", 2*3600))
	require.NoError(t, exe.Schedule(NewJob("job").
		Window(scheda.MustParse("when hour 11")).
		Runner(noop)))

	assert.Equal(t, 0, exe.Tick(context.Background(), utc(11, 0)))
	assert.Equal(t, 1, exe.Tick(context.Background(), utc(9, 0)))
	exe.WaitTasks()
}

func TestTickNoOverlap(t *testing.T) {
	exe, results := newTestExecutor()
	release := make(chan struct{})
	require.NoError(t, exe.Schedule(NewJob("slow").Runner(func(context.Context) ([]byte, error) {
		<-release
		return nil, nil
	})))

	ctx := context.Background()
	assert.Equal(t, 1, exe.Tick(ctx, utc(9, 0)))
	assert.Equal(t, 0, exe.Tick(ctx, utc(9, 1)))

	task, ok := exe.GetTask("slow")
	require.True(t, ok)
	assert.True(t, task.Running)

	close(release)
	exe.WaitTasks()
	assert.Equal(t, 1, exe.Tick(ctx, utc(9, 2)))
	exe.WaitTasks()
	assert.Len(t, *results, 2)
}

func TestTickTimeoutAndPanic(t *testing.T) {
	exe, results := newTestExecutor()
	exe.SetTimeout(10 * time.Millisecond)
	require.NoError(t, exe.Schedule(NewJob("timeout").Runner(func(ctx context.Context) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})))
	require.NoError(t, exe.Schedule(NewJob("panic").Runner(func(context.Context) ([]byte, error) {
		panic("boom")
	})))

	assert.Equal(t, 2, exe.Tick(context.Background(), utc(9, 0)))
	exe.WaitTasks()

	require.Len(t, *results, 2)
	errs := map[string]error{}
	for _, r := range *results {
		errs[r.Job.Name] = r.Err
	}
	assert.True(t, errors.Is(errs["timeout"], context.DeadlineExceeded))
	assert.EqualError(t, errs["panic"], "panic: boom")
}

func TestRunStopsWithContext(t *testing.T) {
	exe, results := newTestExecutor()
	exe.SetTick(time.Millisecond)
	require.NoError(t, exe.Schedule(NewJob("job").Every(time.Hour).Runner(noop)))

	ctx, cancel := context.WithCancel(context.Background())
	exe.Start(ctx)
	require.Eventually(t, func() bool {
		task, _ := exe.GetTask("job")
		return !task.Prev.IsZero()
	}, time.Second, time.Millisecond)

	cancel()
	exe.Wait()
	assert.Len(t, *results, 1)
}

func TestRunOnlyOnce(t *testing.T) {
	exe, _ := newTestExecutor()
	exe.SetTick(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	exe.Start(ctx)
	cancel()
	exe.Wait()

	assert.NotPanics(t, func() { exe.Run(context.Background()) })
	exe.Wait()
}

// failTimes returns a runner failing the first n runs.
func failTimes(n int) (Runner, *int32) {
	runs := new(int32)
	return func(context.Context) ([]byte, error) {
		if atomic.AddInt32(runs, 1) <= int32(n) {
			return nil, errors.New("failure")
		}
		return []byte("ok"), nil
	}, runs
}

func TestTickRetry(t *testing.T) {
	exe, results := newTestExecutor()

	run, runs := failTimes(2)
	require.NoError(t, exe.Schedule(NewJob("success").Retry(3, time.Millisecond).Runner(run)))
	run, _ = failTimes(5)
	require.NoError(t, exe.Schedule(NewJob("exhausted").Retry(1, 0).Runner(run)))

	assert.Equal(t, 2, exe.Tick(context.Background(), utc(9, 0)))
	exe.WaitTasks()

	require.Len(t, *results, 2)
	byName := map[string]Result{}
	for _, r := range *results {
		byName[r.Job.Name] = r
	}

	assert.NoError(t, byName["success"].Err)
	assert.Equal(t, "ok", string(byName["success"].Data))
	assert.Equal(t, 3, byName["success"].Tries)
	assert.Equal(t, int32(3), atomic.LoadInt32(runs))

	assert.EqualError(t, byName["exhausted"].Err, "failure")
	assert.Equal(t, 2, byName["exhausted"].Tries)
}

func TestTickRetryStopsOutsideWindow(t *testing.T) {
	exe, results := newTestExecutor()
	exe.clock = func() time.Time { return utc(10, 0) }

	run, runs := failTimes(5)
	job := NewJob("job").Window(scheda.MustParse("when hour 9")).Retry(3, 0).Runner(run)
	require.NoError(t, exe.Schedule(job))

	assert.Equal(t, 1, exe.Tick(context.Background(), utc(9, 59)))
	exe.WaitTasks()

	require.Len(t, *results, 1)
	assert.Error(t, (*results)[0].Err)
	assert.Equal(t, 1, (*results)[0].Tries)
	assert.Equal(t, int32(1), atomic.LoadInt32(runs))
}

func TestRetryStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	run, runs := failTimes(5)
	job := NewJob("job").Retry(3, time.Hour).Runner(func(c context.Context) ([]byte, error) {
		cancel()
		return run(c)
	})

	_, tries, err := retryToRunJob(ctx, job, 0, func() bool { return true })
	assert.Error(t, err)
	assert.Equal(t, 1, tries)
	assert.Equal(t, int32(1), atomic.LoadInt32(runs))
}

func TestJobBuilder(t *testing.T) {
	window := scheda.MustParse("when hour 1")
	job := NewJob("job").Window(window).Every(time.Minute).Timeout(time.Second).
		Retry(2, time.Second).Runner(noop)
	assert.Equal(t, "job", job.Name)
	assert.Same(t, window, job.Window)
	assert.Equal(t, time.Minute, job.Every)
	assert.Equal(t, time.Second, job.Timeout)
	assert.Equal(t, Retry{Number: 2, Interval: time.Second}, job.Retry)

	assert.Panics(t, func() { NewJob("") })
	assert.Panics(t, func() { NewJob("job").Window(nil) })
	assert.Panics(t, func() { NewJob("job").Every(-time.Second) })
	assert.Panics(t, func() { NewJob("job").Runner(nil) })
	assert.Panics(t, func() { NewJob("job").Retry(-1, 0) })
	assert.Panics(t, func() { NewJob("job").Retry(1, -time.Second) })
}
