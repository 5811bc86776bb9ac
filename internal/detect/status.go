package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/quillcheck/veridoc/internal/infra/redis"
	"github.com/quillcheck/veridoc/internal/models"
	"github.com/rs/zerolog/log"
)

// UpdateStatus records a check's pipeline step in Redis so the UI can poll
// progress while the check runs in the background
func UpdateStatus(ctx context.Context, redisClient *redis.Client, checkID string, step models.Step) error {
	validSteps := map[models.Step]bool{
		models.StepQueued:         true,
		models.StepFingerprinting: true,
		models.StepComparing:      true,
		models.StepAnalyzing:      true,
		models.StepCompleted:      true,
		models.StepFailed:         true,
	}
	if !validSteps[step] {
		return fmt.Errorf("unknown step: %s", step)
	}

	rkey := "plagiarism_check_status:" + checkID

	err := redisClient.Set(ctx, rkey, string(step), 12*time.Hour).Err()
	if err != nil {
		log.Error().Err(err).
			Str("step", string(step)).
			Str("checkId", checkID).
			Str("redisKey", rkey).
			Msg("Failed to update status in Redis")
		return fmt.Errorf("failed to update status in Redis: %w", err)
	}

	log.Trace().
		Str("step", string(step)).
		Str("checkId", checkID).
		Msg("Status updated in Redis")

	return nil
}
