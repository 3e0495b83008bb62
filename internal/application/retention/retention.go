package retention

import (
	"context"
	"time"

	"github.com/s4084228/toc-backend/internal/application/ports"
)

// RunPurgeExpiredResetCodes deletes password reset records past their expiry.
// Lookup already excludes expired codes, so this only keeps the table small.
// Call periodically (e.g. hourly ticker).
func RunPurgeExpiredResetCodes(ctx context.Context, resetStore ports.PasswordResetStore) (purged int64, err error) {
	return resetStore.DeleteExpired(ctx, time.Now())
}
