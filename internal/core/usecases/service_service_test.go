package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avinashdhn/mechmap/internal/core/domain"
	"github.com/avinashdhn/mechmap/internal/core/usecases"
)

func TestServiceCreate_DefaultsActiveAndOwner(t *testing.T) {
	var stored *domain.Service
	repo := &mockServiceRepo{
		createFn: func(ctx context.Context, s *domain.Service) error {
			s.ID = "svc-1"
			stored = s
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := usecases.NewServiceService(repo, pub)

	created, err := svc.Create(context.Background(), "user-1", &domain.Service{
		Name: "Oil change", Description: "Full synthetic", Price: 799,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ProviderID != "user-1" {
		t.Errorf("owner = %q, want the caller's user id", stored.ProviderID)
	}
	if created.Status != domain.ServiceActive {
		t.Errorf("status = %q, want active default", created.Status)
	}
	if len(pub.changes) != 1 || pub.changes[0] != "created:svc-1" {
		t.Errorf("events = %v", pub.changes)
	}
}

func TestServiceCreate_MissingFields(t *testing.T) {
	svc := usecases.NewServiceService(&mockServiceRepo{}, nil)
	if _, err := svc.Create(context.Background(), "user-1", &domain.Service{Name: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation for missing description", err)
	}
}

func TestServiceUpdate_NonOwnerLooksLikeNotFound(t *testing.T) {
	repo := &mockServiceRepo{
		updateFn: func(ctx context.Context, s *domain.Service, ownerID string) (*domain.Service, error) {
			if ownerID != "owner-1" {
				return nil, domain.ErrNotFound
			}
			return s, nil
		},
	}
	svc := usecases.NewServiceService(repo, nil)

	_, err := svc.Update(context.Background(), "intruder", &domain.Service{ID: "svc-1"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound (not a distinguishable forbidden)", err)
	}
}

func TestServiceDelete_NonOwnerLooksLikeNotFound(t *testing.T) {
	repo := &mockServiceRepo{
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			if ownerID != "owner-1" {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	svc := usecases.NewServiceService(repo, nil)

	if err := svc.Delete(context.Background(), "intruder", "svc-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceDelete_OwnerPublishesEvent(t *testing.T) {
	repo := &mockServiceRepo{
		deleteFn: func(ctx context.Context, id, ownerID string) error { return nil },
	}
	pub := &mockPublisher{}
	svc := usecases.NewServiceService(repo, pub)

	if err := svc.Delete(context.Background(), "owner-1", "svc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.changes) != 1 || pub.changes[0] != "deleted:svc-1" {
		t.Errorf("events = %v", pub.changes)
	}
}
