package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hirestack/recruit-api/internal/repositories"
)

// Worker drains the ranking job queue. Jobs also land in the ranking_jobs
// table as queued, so a poller re-enqueues anything that was accepted but
// never processed (for example after a restart).
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	jobRepo      repositories.RankingJobRepository
	screening    ScreeningService
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
}

func NewWorker(
	jobRepo repositories.RankingJobRepository,
	screening ScreeningService,
	concurrency int,
) Worker {
	return &worker{
		jobRepo:      jobRepo,
		screening:    screening,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: 10 * time.Second,
		stopChan:     make(chan struct{}),
	}
}

func (w *worker) Start(ctx context.Context) {
	log.Printf("starting ranking worker, concurrency=%d", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

func (w *worker) Stop() {
	log.Println("stopping ranking worker")
	close(w.stopChan)
	w.wg.Wait()
}

func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
	case <-w.stopChan:
		log.Printf("worker stopped, job %s stays queued for the next start", jobID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case jobID := <-w.jobQueue:
			if err := w.screening.ProcessJob(ctx, jobID); err != nil {
				log.Printf("worker #%d: job %s failed: %v", workerID, jobID, err)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("failed to fetch pending ranking jobs: %v", err)
				continue
			}
			for _, job := range pending {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
