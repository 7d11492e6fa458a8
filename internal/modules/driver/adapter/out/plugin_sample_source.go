package out

import (
	"context"

	"senscal/internal/modules/driver/domain"
	driverout "senscal/internal/modules/driver/port/out"
	sessiondomain "senscal/internal/modules/session/domain"
	sessionout "senscal/internal/modules/session/port/out"
)

// PluginSampleSource reads frames from an external driver resolved at
// bootstrap. The manifest is pinned so every read in a run hits the same
// verified binary.
type PluginSampleSource struct {
	host     driverout.Host
	manifest domain.Manifest
}

func NewPluginSampleSource(host driverout.Host, manifest domain.Manifest) *PluginSampleSource {
	return &PluginSampleSource{host: host, manifest: manifest}
}

func (s *PluginSampleSource) ReadFrame(ctx context.Context, pos sessiondomain.Position) (float64, error) {
	return s.host.ReadFrame(ctx, s.manifest, domain.ReadRequest{
		X:        pos.X,
		Y:        pos.Y,
		Distance: pos.Distance,
	})
}

var _ sessionout.SampleSource = (*PluginSampleSource)(nil)
