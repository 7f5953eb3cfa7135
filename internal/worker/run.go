package worker

import (
	"context"
	"sync"

	"github.com/B3RT1337/lookup-bot/internal/command"
)

// Handler runs one command line. *command.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, command string) command.Result
}

// Result pairs an input line with its outcome.
type Result struct {
	Input  string         `json:"input"`
	Output command.Result `json:"output"`
}

const canceledMessage = "Command canceled."

// Run hands every input to h using at most concurrency goroutines and returns
// the results in input order. Inputs not yet started when ctx is canceled are
// reported as unsuccessful without reaching h.
func Run(ctx context.Context, h Handler, inputs []string, concurrency int) []Result {
	results := make([]Result, len(inputs))
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(concurrency, len(inputs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i].Input = inputs[i]
				if ctx.Err() != nil {
					results[i].Output = command.Result{Message: canceledMessage}
					continue
				}
				results[i].Output = h.Handle(ctx, inputs[i])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
