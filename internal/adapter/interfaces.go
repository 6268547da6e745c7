package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-card-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CloudStore is the remote store collaborator. All calls are implicitly
// scoped to the authenticated owning user carried in the bearer token.
//
// Every method may fail with a transport error (network unreachable,
// timeout) or with an application-level rejection; the two are
// distinguishable via [IsTransport].
type CloudStore interface {
	Insert(ctx context.Context, record models.CloudRecord) error
	Update(ctx context.Context, id string, record models.CloudRecord) error
	Select(ctx context.Context, filter models.CloudFilter) ([]models.CloudRecord, error)
	CountWhere(ctx context.Context, filter models.CloudFilter) (int64, error)

	// Ping performs a lightweight HEAD round-trip and returns the measured
	// latency. Used by the health check job and the planner's
	// network-aware delay probe.
	Ping(ctx context.Context) (time.Duration, error)

	// OwnerID returns the user id parsed from the bearer token subject.
	OwnerID() int64

	SetToken(token string) error
}
