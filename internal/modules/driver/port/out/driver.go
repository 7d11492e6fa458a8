package out

import (
	"context"

	"senscal/internal/modules/driver/domain"
)

// ManifestStore reads the installed driver manifests.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host starts a driver binary and talks the driver protocol to it.
type Host interface {
	Probe(ctx context.Context, manifest domain.Manifest) error
	Info(ctx context.Context, manifest domain.Manifest) (domain.Info, error)
	ReadFrame(ctx context.Context, manifest domain.Manifest, req domain.ReadRequest) (float64, error)
}
