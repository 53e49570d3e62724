// Package async runs independent read-only fetches concurrently and
// joins their results.
package async

import (
	"context"
	"sync"
)

// Task is a named unit of work executed on its own goroutine.
type Task struct {
	Name    string
	Execute func() (interface{}, error)
}

// Result carries a task's outcome, keyed by the task name.
type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Run executes every task concurrently and blocks until all complete or
// the context is cancelled. Results are keyed by task name; tasks still
// running when the context ends are reported with the context error.
func Run(ctx context.Context, tasks []Task) map[string]Result {
	resultCh := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			data, err := t.Execute()
			resultCh <- Result{Name: t.Name, Data: data, Err: err}
		}(task)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make(map[string]Result, len(tasks))
	for {
		select {
		case result, ok := <-resultCh:
			if !ok {
				return results
			}
			results[result.Name] = result
		case <-ctx.Done():
			for _, t := range tasks {
				if _, done := results[t.Name]; !done {
					results[t.Name] = Result{Name: t.Name, Err: ctx.Err()}
				}
			}
			return results
		}
	}
}
