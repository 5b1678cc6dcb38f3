package services

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/pagehound/pagehound-cli/internal/core/ports/driven"
	"github.com/pagehound/pagehound-cli/internal/logger"
)

// pageTask tags a page image with its original position so that results
// can be placed correctly regardless of completion order.
type pageTask struct {
	index int
	image []byte
}

// PagePool runs page-level recognition across a fixed number of workers.
// Output order always matches input order: each worker writes its result
// into the slot named by the task's page index, never by completion
// sequence. A failing page yields the empty string and does not disturb
// its siblings.
type PagePool struct {
	recognizer driven.Recognizer
	workers    int
}

// NewPagePool creates a pool of the given size. A non-positive size
// defaults to the number of available CPUs.
func NewPagePool(recognizer driven.Recognizer, workers int) *PagePool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &PagePool{
		recognizer: recognizer,
		workers:    workers,
	}
}

// Workers returns the configured pool size.
func (p *PagePool) Workers() int {
	return p.workers
}

// RunPages recognizes every page image concurrently and returns the texts
// in page order. The returned slice always has the same length as images.
// An error is returned only when the pool cannot run at all (no
// recognizer configured); page-level failures are absorbed.
func (p *PagePool) RunPages(ctx context.Context, images [][]byte) ([]string, error) {
	if p.recognizer == nil {
		return nil, errors.New("recognizer unavailable")
	}

	texts := make([]string, len(images))
	if len(images) == 0 {
		return texts, nil
	}

	workers := p.workers
	if workers > len(images) {
		workers = len(images)
	}

	tasks := make(chan pageTask)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for task := range tasks {
				texts[task.index] = p.recognizeOne(ctx, task)
			}
		}()
	}

	for i, img := range images {
		tasks <- pageTask{index: i, image: img}
	}
	close(tasks)
	wg.Wait()

	return texts, nil
}

// recognizeOne runs recognition for a single page, absorbing both errors
// and panics so one bad page cannot take down the pool.
func (p *PagePool) recognizeOne(ctx context.Context, task pageTask) (text string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Page %d recognition panicked: %v", task.index+1, r)
			text = ""
		}
	}()

	text, err := p.recognizer.Recognize(ctx, task.image)
	if err != nil {
		logger.Warn("Page %d recognition failed: %v", task.index+1, err)
		return ""
	}
	return text
}
