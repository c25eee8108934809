package services

import (
	"context"
	"os"
	"time"

	"github.com/ysh038/cloud-storage/logger"
	"github.com/ysh038/cloud-storage/repositories"
)

// Reclaimer accepts paths whose metadata rows are already deleted and
// removes the bytes out of band. Enqueue never blocks the request path
// and never reports completion; stray bytes are a resource leak, not a
// correctness problem.
type Reclaimer interface {
	Enqueue(paths []string)
}

const (
	reclaimPopTimeout  = 5 * time.Second
	reclaimPushTimeout = 5 * time.Second
)

// QueueReclaimer pushes paths onto a durable queue and drains it with a
// dedicated worker. If the queue is unreachable the pushing goroutine
// unlinks the paths itself, which keeps the best-effort floor of direct
// background deletion.
type QueueReclaimer struct {
	queue     repositories.ReclaimQueue
	allocator *PathAllocator
}

func NewQueueReclaimer(queue repositories.ReclaimQueue, allocator *PathAllocator) *QueueReclaimer {
	return &QueueReclaimer{queue: queue, allocator: allocator}
}

// Enqueue hands the batch off to a goroutine so a slow queue can never
// stall the request that produced it.
func (r *QueueReclaimer) Enqueue(paths []string) {
	if len(paths) == 0 {
		return
	}

	go func(paths []string) {
		ctx, cancel := context.WithTimeout(context.Background(), reclaimPushTimeout)
		defer cancel()

		if err := r.queue.Push(ctx, paths); err != nil {
			logger.Errorf("queue %d paths for reclamation: %v, falling back to direct cleanup", len(paths), err)
			for _, p := range paths {
				r.remove(p)
			}
		}
	}(paths)
}

// Start runs the drain loop until ctx is cancelled.
func (r *QueueReclaimer) Start(ctx context.Context) {
	go r.drain(ctx)
}

func (r *QueueReclaimer) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		path, err := r.queue.Pop(ctx, reclaimPopTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Errorf("pop reclamation queue: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if path == "" {
			continue
		}

		r.remove(path)
	}
}

// remove tolerates already-absent files: a path may be retried after a
// crash that happened between unlink and queue acknowledgement.
func (r *QueueReclaimer) remove(relPath string) {
	if err := os.Remove(r.allocator.Abs(relPath)); err != nil && !os.IsNotExist(err) {
		logger.Errorf("reclaim %s: %v", relPath, err)
	}
}
