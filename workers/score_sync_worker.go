// workers/score_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"cleanup-game-system/models"
	"cleanup-game-system/services"

	"gorm.io/gorm"
)

// ScoredCleanup matches the JSON response from the external scorer service.
type ScoredCleanup struct {
	CleanupID string    `json:"cleanup_id"`
	Score     float64   `json:"score"`
	ScoredAt  time.Time `json:"scored_at"`
}

// GetScoresResponse is the top-level structure of the scorer response.
type GetScoresResponse struct {
	Scores []ScoredCleanup `json:"scores"`
}

// ScoreSyncWorker polls the external AI scorer for plausibility scores
// and backfills them onto still-pending cleanup claims. Scoring itself
// happens entirely in the scorer service; this worker only moves the
// numbers and re-runs verification with them.
type ScoreSyncWorker struct {
	db           *gorm.DB
	cleanups     *services.CleanupService
	interval     time.Duration
	baseURL      string
	serviceToken string
	httpClient   *http.Client
	lastSync     time.Time
}

func NewScoreSyncWorker(db *gorm.DB, cleanups *services.CleanupService, scorerBaseURL, serviceToken string) *ScoreSyncWorker {
	return &ScoreSyncWorker{
		db:           db,
		cleanups:     cleanups,
		interval:     1 * time.Minute,
		baseURL:      scorerBaseURL,
		serviceToken: serviceToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *ScoreSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting AI Score Sync Worker (scorer-service → cleanups)…")
	go w.run(ctx)
}

func (w *ScoreSyncWorker) run(ctx context.Context) {
	if err := w.syncBatch(ctx); err != nil {
		log.Printf("⚠️ Initial score sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx); err != nil {
				log.Printf("❌ Score sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ AI Score Sync Worker stopped")
			return
		}
	}
}

// syncBatch fetches scores produced since the last sync and applies
// them to pending claims. Terminal claims are left untouched.
func (w *ScoreSyncWorker) syncBatch(ctx context.Context) error {
	since := w.lastSync.UTC()
	batchStart := time.Now()

	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid scorer base URL '%s': %w", w.baseURL, err)
	}
	base = base.JoinPath("/api/v1/scores")
	q := base.Query()
	q.Set("since", since.Format(time.RFC3339))
	base.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build scorer request: %w", err)
	}
	if w.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+w.serviceToken)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scorer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("scorer returned %d: %s", resp.StatusCode, string(body))
	}

	var payload GetScoresResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode scorer response: %w", err)
	}

	applied := 0
	for _, scored := range payload.Scores {
		if scored.Score < 0 || scored.Score > 1 {
			log.Printf("⚠️ Skipping out-of-range score %f for cleanup %s", scored.Score, scored.CleanupID)
			continue
		}

		res := w.db.Model(&models.CleanupClaim{}).
			Where("id = ? AND status = ?", scored.CleanupID, models.CleanupStatusPending).
			Update("ai_score", scored.Score)
		if res.Error != nil {
			log.Printf("❌ Failed to apply score for cleanup %s: %v", scored.CleanupID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		claim, err := w.cleanups.GetCleanup(scored.CleanupID)
		if err != nil {
			log.Printf("❌ Failed to reload cleanup %s after scoring: %v", scored.CleanupID, err)
			continue
		}
		if _, err := w.cleanups.Reevaluate(claim); err != nil {
			log.Printf("❌ Re-evaluation failed for cleanup %s: %v", scored.CleanupID, err)
			continue
		}
		applied++
	}

	if applied > 0 {
		log.Printf("[ScoreSync] ✅ Applied %d score(s) since %s", applied, since.Format(time.RFC3339))
	}
	w.lastSync = batchStart
	return nil
}
