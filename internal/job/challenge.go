package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/templui/habitkit/internal/model"
)

const challengeSweepTimeout = 5 * time.Minute

// lastZone is the westernmost civil offset. Once its date has passed a
// challenge's end date, that day is over for every participant.
var lastZone = time.FixedZone("UTC-12", -12*60*60)

// ChallengeCompleter finishes challenges whose last day is before today.
type ChallengeCompleter interface {
	CompleteExpired(ctx context.Context, today model.Date) (int, error)
}

// ChallengeJob completes expired challenges. "Today" is the date in
// UTC-12, so no participant is still on the last day when streaks freeze.
type ChallengeJob struct {
	completer ChallengeCompleter
	now       func() time.Time
}

func NewChallengeJob(completer ChallengeCompleter) *ChallengeJob {
	return &ChallengeJob{
		completer: completer,
		now:       time.Now,
	}
}

func (j *ChallengeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), challengeSweepTimeout)
	defer cancel()

	today := model.Today(j.now(), lastZone)
	n, err := j.completer.CompleteExpired(ctx, today)
	if err != nil {
		slog.Error("challenge sweep failed", "error", err, "today", today.String(), "completed", n)
		return
	}
	if n > 0 {
		slog.Info("challenge sweep finished", "today", today.String(), "completed", n)
	}
}
