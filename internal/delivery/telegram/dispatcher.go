package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const dispatchQueueSize = 64

// dispatcher shards updates by user so that one user's messages are
// handled in arrival order while different users run in parallel.
type dispatcher struct {
	queues []chan tgbotapi.Update
	handle func(ctx context.Context, update tgbotapi.Update)
	wg     sync.WaitGroup
}

func newDispatcher(workers int, handle func(ctx context.Context, update tgbotapi.Update)) *dispatcher {
	if workers <= 0 {
		workers = 1
	}

	queues := make([]chan tgbotapi.Update, workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, dispatchQueueSize)
	}

	return &dispatcher{queues: queues, handle: handle}
}

func (d *dispatcher) start(ctx context.Context) {
	for _, q := range d.queues {
		d.wg.Add(1)
		go func(q <-chan tgbotapi.Update) {
			defer d.wg.Done()
			for update := range q {
				d.handle(ctx, update)
			}
		}(q)
	}
}

// dispatch enqueues update on the worker owning its sender. It blocks while
// that worker's queue is full and gives up when ctx is done.
func (d *dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) bool {
	userID, _ := userIDOf(update)
	q := d.queues[d.shard(userID)]

	select {
	case q <- update:
		return true
	case <-ctx.Done():
		return false
	}
}

func (d *dispatcher) shard(userID int64) int {
	return int(uint64(userID) % uint64(len(d.queues)))
}

// stop closes the queues and waits for in-flight updates.
func (d *dispatcher) stop() {
	for _, q := range d.queues {
		close(q)
	}
	d.wg.Wait()
}
