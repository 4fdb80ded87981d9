package workflows

import (
	"context"
	"fmt"

	"github.com/avinashdhn/mechmap/internal/core/usecases"
)

// ModerationActivities holds the activity implementations for the
// moderation workflow.
type ModerationActivities struct {
	Moderation *usecases.ModerationService
}

// ApplyDecision writes the status transition for a provider.
func (a *ModerationActivities) ApplyDecision(ctx context.Context, providerID, status string) error {
	if err := a.Moderation.Apply(ctx, providerID, status); err != nil {
		return fmt.Errorf("apply decision %s for provider %s: %w", status, providerID, err)
	}
	return nil
}
