package cleanup

import (
	"context"
	"log"
	"time"
)

// sessions older than this are removed from the database once inactive
const sessionRetention = 30 * 24 * time.Hour

type GameSessions interface {
	CleanupIdleSessions() int
}

type LoginSessions interface {
	CleanupOldSessions(olderThan time.Duration) (int64, error)
}

type Worker struct {
	SessionManager    GameSessions
	SessionRepository LoginSessions
	Interval          time.Duration
}

func NewWorker(sm GameSessions, sr LoginSessions, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Worker{SessionManager: sm, SessionRepository: sr, Interval: interval}
}

// Start runs one cleanup right away and then one per interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	w.SessionManager.CleanupIdleSessions()

	if w.SessionRepository == nil {
		return
	}
	deletedCount, err := w.SessionRepository.CleanupOldSessions(sessionRetention)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up DB sessions: %v", err)
	} else if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d expired sessions from database", deletedCount)
	}
}
