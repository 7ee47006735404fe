package store

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/solviatours/backoffice/internal/access"
	"github.com/solviatours/backoffice/internal/gateway"
	"github.com/solviatours/backoffice/internal/logger"
	"github.com/solviatours/backoffice/internal/metrics"
	"github.com/solviatours/backoffice/internal/models"
	"github.com/solviatours/backoffice/internal/notify"
)

// fakeAdmin records provisioning calls without touching credentials.
type fakeAdmin struct {
	nextID uint
	err    error
}

func (f *fakeAdmin) CreateUser(_ context.Context, email, _, firstName, lastName string, role access.Role) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	return &models.Profile{
		ID:        f.nextID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
		RoleLabel: access.Label(role),
		Active:    true,
	}, nil
}

func newTestStore(gw *gateway.Fake) *Store {
	return New(gw, gw, &fakeAdmin{}, logger.NewNop(), metrics.New("test", prometheus.NewRegistry()), notify.NewNotifier())
}
