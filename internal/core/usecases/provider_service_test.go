package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
)

// --- Mock EventPublisher / ModerationStarter ---

type mockPublisher struct {
	registered []string
	statuses   []string
	changes    []string
}

func (m *mockPublisher) PublishProviderRegistered(ctx context.Context, p *domain.Provider) error {
	m.registered = append(m.registered, p.ID)
	return nil
}

func (m *mockPublisher) PublishProviderStatus(ctx context.Context, p *domain.Provider) error {
	m.statuses = append(m.statuses, p.ID+":"+p.Status)
	return nil
}

func (m *mockPublisher) PublishServiceChange(ctx context.Context, action string, s *domain.Service) error {
	m.changes = append(m.changes, action+":"+s.ID)
	return nil
}

type mockStarter struct {
	started  []string
	signaled []string
}

func (m *mockStarter) StartModeration(ctx context.Context, providerID string) error {
	m.started = append(m.started, providerID)
	return nil
}

func (m *mockStarter) SignalDecision(ctx context.Context, providerID, status string) error {
	m.signaled = append(m.signaled, providerID+":"+status)
	return nil
}

func validProfile() *domain.Provider {
	return &domain.Provider{
		OwnerName:    "Ravi",
		WorkshopName: "Ravi Auto Works",
		Mobile:       "9999999999",
		Address:      "Karol Bagh, Delhi",
		ServiceType:  "bike",
		Latitude:     28.65,
		Longitude:    77.19,
	}
}

func TestProviderUpsert_SequentialCallsHitSameRecord(t *testing.T) {
	store := map[string]*domain.Provider{} // userID -> profile
	repo := &mockProviderRepo{
		upsertFn: func(ctx context.Context, p *domain.Provider) (bool, error) {
			if existing, ok := store[p.UserID]; ok {
				p.ID = existing.ID
				p.Status = existing.Status
				store[p.UserID] = p
				return false, nil
			}
			p.ID = "prov-1"
			p.Status = domain.ProviderPending
			store[p.UserID] = p
			return true, nil
		},
	}
	pub := &mockPublisher{}
	starter := &mockStarter{}
	svc := usecases.NewProviderService(repo, nil, pub, starter)

	first, err := svc.Upsert(context.Background(), "user-1", validProfile())
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	changed := validProfile()
	changed.WorkshopName = "Ravi Motors"
	second, err := svc.Upsert(context.Background(), "user-1", changed)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("second upsert created a new record: %s vs %s", first.ID, second.ID)
	}
	if len(store) != 1 {
		t.Errorf("expected one stored profile, got %d", len(store))
	}
	if second.Status != domain.ProviderPending {
		t.Errorf("update changed status to %q", second.Status)
	}
	// Moderation and the registered event fire once, on creation only.
	if len(starter.started) != 1 || len(pub.registered) != 1 {
		t.Errorf("started=%v registered=%v, want one each", starter.started, pub.registered)
	}
}

func TestProviderUpsert_MissingFields(t *testing.T) {
	svc := usecases.NewProviderService(&mockProviderRepo{}, nil, nil, nil)
	if _, err := svc.Upsert(context.Background(), "user-1", &domain.Provider{OwnerName: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for missing workshopName/serviceType", err)
	}
}

func TestMyProfile_NotFound(t *testing.T) {
	svc := usecases.NewProviderService(&mockProviderRepo{}, nil, nil, nil)
	if _, err := svc.MyProfile(context.Background(), "user-1"); err != domain.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestByServiceType_ApprovedOnly(t *testing.T) {
	repo := &mockProviderRepo{
		listCandidatesFn: func(ctx context.Context, serviceType string, statuses []string) ([]domain.Provider, error) {
			if len(statuses) != 1 || statuses[0] != domain.ProviderApproved {
				t.Errorf("statuses = %v, want [approved]", statuses)
			}
			return []domain.Provider{{ID: "p1", ServiceType: serviceType}}, nil
		},
	}
	svc := usecases.NewProviderService(repo, nil, nil, nil)
	got, err := svc.ByServiceType(context.Background(), "bike")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(got))
	}
}

func TestModerationDecide_RoutesThroughStarter(t *testing.T) {
	starter := &mockStarter{}
	svc := usecases.NewModerationService(&mockProviderRepo{}, nil, nil, starter)

	if err := svc.Decide(context.Background(), "prov-1", domain.ProviderApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(starter.signaled) != 1 || starter.signaled[0] != "prov-1:approved" {
		t.Errorf("signaled = %v", starter.signaled)
	}
}

func TestModerationDecide_InvalidStatus(t *testing.T) {
	svc := usecases.NewModerationService(&mockProviderRepo{}, nil, nil, nil)
	if err := svc.Decide(context.Background(), "prov-1", "pending"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for invalid status", err)
	}
}

func TestModerationApply_DirectWhenNoWorkflow(t *testing.T) {
	var set []string
	repo := &mockProviderRepo{
		setStatusFn: func(ctx context.Context, id, status string) error {
			set = append(set, id+":"+status)
			return nil
		},
		getByIDFn: func(ctx context.Context, id string) (*domain.Provider, error) {
			return &domain.Provider{ID: id, UserID: "user-1", Status: domain.ProviderRejected}, nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewModerationService(repo, nil, pub, nil)

	if err := svc.Decide(context.Background(), "prov-1", domain.ProviderRejected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 1 || set[0] != "prov-1:rejected" {
		t.Errorf("set = %v", set)
	}
	if len(pub.statuses) != 1 {
		t.Errorf("status events = %v, want one", pub.statuses)
	}
}
