package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// DecisionSignal carries an admin approve/reject decision into a
// running moderation workflow.
const DecisionSignal = "moderation-decision"

// ModerationInput is the input for the moderation workflow.
type ModerationInput struct {
	ProviderID string
}

// moderationTimeout bounds how long a profile can sit pending before
// the workflow gives up and leaves it for manual review.
const moderationTimeout = 7 * 24 * time.Hour

// ModerationWorkflow waits for an admin decision on a freshly
// registered provider and applies it. A workflow that times out leaves
// the provider pending.
func ModerationWorkflow(ctx workflow.Context, input ModerationInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting moderation workflow", "providerID", input.ProviderID)

	var status string
	ch := workflow.GetSignalChannel(ctx, DecisionSignal)

	ok, err := workflow.AwaitWithTimeout(ctx, moderationTimeout, func() bool {
		return ch.ReceiveAsync(&status)
	})
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn("moderation timed out, provider stays pending", "providerID", input.ProviderID)
		return nil
	}

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	if err := workflow.ExecuteActivity(ctx, "ApplyDecision", input.ProviderID, status).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("Moderation decision applied", "providerID", input.ProviderID, "status", status)
	return nil
}
