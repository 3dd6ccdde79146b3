package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// mockResult implements Result
type mockResult struct {
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

// mockJob implements Job
type mockJob struct {
	duration  time.Duration
	shouldErr bool
	executed  *int32 // atomic counter
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{err: ctx.Err()}
		}
	}
	if j.shouldErr {
		return &mockResult{err: errors.New("job error")}
	}
	return &mockResult{err: nil}
}

func TestNewPool(t *testing.T) {
	p1 := NewPool(context.Background(), 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(context.Background(), 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(context.Background(), -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_Execution(t *testing.T) {
	var executed int32
	count := 10

	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = &mockJob{executed: &executed}
	}

	results := NewPool(context.Background(), 2).Run(jobs)

	if len(results) != count {
		t.Errorf("expected %d results, got %d", count, len(results))
	}

	if atomic.LoadInt32(&executed) != int32(count) {
		t.Errorf("expected %d executed jobs, got %d", count, executed)
	}
}

// concurrencyJob tracks max concurrent executions
type concurrencyJob struct {
	start    func()
	end      func()
	duration time.Duration
}

func (j *concurrencyJob) Execute(ctx context.Context) Result {
	if j.start != nil {
		j.start()
	}
	time.Sleep(j.duration)
	if j.end != nil {
		j.end()
	}
	return &mockResult{}
}

func TestPool_Concurrency(t *testing.T) {
	workers := 10

	var current int32
	var maxConcurrent int32
	var completed int32
	var mu sync.Mutex

	totalJobs := 50

	jobs := make([]Job, totalJobs)
	for i := range jobs {
		jobs[i] = &concurrencyJob{
			start: func() {
				curr := atomic.AddInt32(&current, 1)
				mu.Lock()
				if curr > maxConcurrent {
					maxConcurrent = curr
				}
				mu.Unlock()
			},
			end: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			duration: 10 * time.Millisecond,
		}
	}

	NewPool(context.Background(), workers).Run(jobs)

	if atomic.LoadInt32(&completed) != int32(totalJobs) {
		t.Errorf("expected %d completed jobs, got %d", totalJobs, completed)
	}

	mu.Lock()
	max := maxConcurrent
	mu.Unlock()

	if max > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", max, workers)
	}

	if max <= 1 {
		t.Logf("Warning: max concurrency was %d, expected > 1", max)
	}
}

func TestPool_ErrorHandling(t *testing.T) {
	jobs := []Job{&mockJob{shouldErr: true}, &mockJob{shouldErr: false}}

	results := NewPool(context.Background(), 2).Run(jobs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	errors := 0
	for _, res := range results {
		if res.GetError() != nil {
			errors++
		}
	}

	if errors != 1 {
		t.Errorf("expected 1 error, got %d", errors)
	}
}

func TestPool_SubmitAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	cancel()

	// Submit after cancellation should neither block nor accept the job
	done := make(chan bool)
	go func() {
		done <- pool.submit(0, &mockJob{})
	}()

	select {
	case accepted := <-done:
		if accepted {
			t.Error("expected submit to reject the job after cancellation")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("submit after cancellation blocked")
	}
}

// orderedJob returns its own index after a delay that is longest for the
// earliest jobs
type orderedJob struct {
	index int
	total int
}

type orderedResult struct {
	index int
}

func (r *orderedResult) GetError() error {
	return nil
}

func (j *orderedJob) Execute(ctx context.Context) Result {
	time.Sleep(time.Duration(j.total-j.index) * time.Millisecond)
	return &orderedResult{index: j.index}
}

func TestPool_RunPreservesOrder(t *testing.T) {
	total := 40
	jobs := make([]Job, total)
	for i := range jobs {
		jobs[i] = &orderedJob{index: i, total: total}
	}

	results := NewPool(context.Background(), 8).Run(jobs)
	if len(results) != total {
		t.Fatalf("expected %d results, got %d", total, len(results))
	}
	for i, r := range results {
		if got := r.(*orderedResult).index; got != i {
			t.Errorf("result %d came from job %d", i, got)
		}
	}
}

func TestPool_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = &mockJob{}
	}

	done := make(chan []Result)
	go func() {
		done <- NewPool(ctx, 2).Run(jobs)
	}()

	select {
	case results := <-done:
		if len(results) == len(jobs) {
			t.Errorf("expected cancelled run to skip jobs, got all %d results", len(results))
		}
	case <-time.After(time.Second):
		t.Fatal("Run on a cancelled context blocked")
	}
}
