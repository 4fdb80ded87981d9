package temporal

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/avinashdhn/mechmap/internal/workflows"
)

// Starter implements ports.ModerationStarter against a Temporal
// cluster.
type Starter struct {
	client    client.Client
	taskQueue string
}

// NewStarter dials the Temporal frontend.
func NewStarter(hostPort, taskQueue string) (*Starter, error) {
	c, err := client.Dial(client.Options{
		HostPort: hostPort,
	})
	if err != nil {
		return nil, fmt.Errorf("temporal client: %w", err)
	}
	return &Starter{client: c, taskQueue: taskQueue}, nil
}

func workflowID(providerID string) string {
	return "moderation-" + providerID
}

// StartModeration launches the moderation workflow for a freshly
// registered provider. The workflow ID is derived from the provider, so
// a repeat start for the same provider is a no-op.
func (s *Starter) StartModeration(ctx context.Context, providerID string) error {
	_, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflowID(providerID),
		TaskQueue: s.taskQueue,
	}, workflows.ModerationWorkflow, workflows.ModerationInput{ProviderID: providerID})
	if err != nil {
		return fmt.Errorf("start moderation workflow: %w", err)
	}
	return nil
}

// SignalDecision delivers an admin decision to the provider's
// moderation workflow.
func (s *Starter) SignalDecision(ctx context.Context, providerID, status string) error {
	if err := s.client.SignalWorkflow(ctx, workflowID(providerID), "", workflows.DecisionSignal, status); err != nil {
		return fmt.Errorf("signal moderation workflow: %w", err)
	}
	return nil
}

// Close releases the Temporal client.
func (s *Starter) Close() {
	s.client.Close()
}
