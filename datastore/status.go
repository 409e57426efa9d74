package datastore

import (
	"context"
	"fmt"
	"sync"

	"github.com/evportal-ch/newshub/models"
	"github.com/google/uuid"
)

// maxStatusChecks bounds the in-memory history; the oldest entries are
// dropped once exceeded.
const maxStatusChecks = 1000

// StatusCheckRepository stores status-check pings in memory. The service
// deliberately runs without a database: besides these pings, the news cache
// is its only cross-request state.
type StatusCheckRepository struct {
	mu     sync.RWMutex
	checks []models.StatusCheck
}

func NewStatusCheckRepository() *StatusCheckRepository {
	return &StatusCheckRepository{}
}

func (r *StatusCheckRepository) CreateStatusCheck(_ context.Context, check *models.StatusCheck) error {
	if _, err := uuid.Parse(check.ID); err != nil {
		return fmt.Errorf("invalid status check ID format: %w", err)
	}
	if check.ClientName == "" {
		return fmt.Errorf("status check client name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, *check)
	if len(r.checks) > maxStatusChecks {
		r.checks = r.checks[len(r.checks)-maxStatusChecks:]
	}
	return nil
}

func (r *StatusCheckRepository) GetStatusChecks(_ context.Context) ([]models.StatusCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checks := make([]models.StatusCheck, len(r.checks))
	copy(checks, r.checks)
	return checks, nil
}
