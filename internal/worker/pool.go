// Package worker provides background processing for cover-art jobs.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

// Spotify materializes mosaic covers shortly after tracks land; fetching
// immediately usually returns nothing.
const coverFetchDelay = 2 * time.Second

// Job asks for the cover of a created playlist to be attached to a history
// item.
type Job struct {
	HistoryID  string
	PlaylistID string
}

// Pool manages background workers for cover-art jobs.
type Pool struct {
	music   ports.MusicProvider
	history ports.HistoryRepository
	logger  *slog.Logger
	jobs    chan Job
	wg      sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(music ports.MusicProvider, history ports.HistoryRepository, logger *slog.Logger, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		music:   music,
		history: history,
		logger:  logger,
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a cover fetch without blocking; a full queue drops the job.
func (p *Pool) Submit(historyID, playlistID string) {
	select {
	case p.jobs <- Job{HistoryID: historyID, PlaylistID: playlistID}:
	default:
		p.logger.Warn("dropping cover job", "history_id", historyID)
	}
}

func (p *Pool) processJob(job Job) {
	time.Sleep(coverFetchDelay)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	coverURL, err := p.music.PlaylistCoverURL(ctx, job.PlaylistID)
	if err != nil {
		p.logger.Warn("cover fetch failed", "playlist_id", job.PlaylistID, "error", err)
		return
	}
	if coverURL == "" {
		p.logger.Debug("no cover available yet", "playlist_id", job.PlaylistID)
		return
	}

	if err := p.history.UpdateCoverURL(ctx, job.HistoryID, coverURL); err != nil {
		p.logger.Warn("failed to update history cover", "history_id", job.HistoryID, "error", err)
		return
	}
	p.logger.Debug("history cover updated", "history_id", job.HistoryID)
}
