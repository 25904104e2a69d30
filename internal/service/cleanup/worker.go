package cleanup

import (
	"log"
	"time"

	"github.com/connectk/backend/internal/service/game"
)

// Worker evicts idle game sessions in the background.
type Worker struct {
	Engine   *game.Engine
	Interval time.Duration
}

func NewWorker(engine *game.Engine, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &Worker{Engine: engine, Interval: interval}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	go w.run()

	ticker := time.NewTicker(w.Interval)
	go func() {
		for range ticker.C {
			w.run()
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) run() {
	evicted := w.Engine.EvictIdle()
	if evicted > 0 {
		log.Printf("[CLEANUP] Evicted %d idle sessions", evicted)
	}
}
