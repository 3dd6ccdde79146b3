package worker

import (
	"context"
	"sort"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a Job
type Result interface {
	GetError() error
}

// indexed pairs a job or result with its submission order
type indexed[T any] struct {
	seq  int
	item T
}

// Pool runs jobs on a fixed number of goroutines and returns results in
// submission order
type Pool struct {
	workers    int
	jobQueue   chan indexed[Job]
	results    chan indexed[Result]
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// NewPool creates a pool bound to ctx; cancelling ctx stops the workers
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexed[Job], workers*2),
		results:    make(chan indexed[Result], workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

func (p *Pool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.item.Execute(p.ctx)
			select {
			case p.results <- indexed[Result]{seq: job.seq, item: result}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// submit queues job seq. It returns false once the context is cancelled.
func (p *Pool) submit(seq int, job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- indexed[Job]{seq: seq, item: job}:
		return true
	}
}

// Run starts the pool, feeds it jobs and returns their results in
// submission order. Jobs not yet started when the context is cancelled
// produce no result.
func (p *Pool) Run(jobs []Job) []Result {
	p.start()
	go func() {
		defer close(p.jobQueue)
		for i, job := range jobs {
			if !p.submit(i, job) {
				return
			}
		}
	}()
	return p.gather()
}

func (p *Pool) gather() []Result {
	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	var collected []indexed[Result]
	for r := range p.results {
		collected = append(collected, r)
	}
	p.cancelFunc()

	sort.Slice(collected, func(i, j int) bool { return collected[i].seq < collected[j].seq })
	results := make([]Result, len(collected))
	for i, r := range collected {
		results[i] = r.item
	}
	return results
}
