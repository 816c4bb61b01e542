// Package health aggregates component status for the health surface.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// Check values for individual components.
const (
	CheckLive     = "live"
	CheckError    = "error"
	CheckFallback = "fallback"
	CheckOK       = "ok"
)

// Report aggregates component health check results.
type Report struct {
	Status Status
	Checks map[string]string
}

// Service coordinates health checks.
type Service struct {
	channels  []Channel
	catalog   CatalogReader
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(channels []Channel, catalog CatalogReader, embedding EmbeddingChecker) *Service {
	return &Service{channels: channels, catalog: catalog, embedding: embedding}
}

// Check reports per-channel status and the catalog mode. A channel that
// cannot serve degrades overall status; serving the fallback catalog is
// reported but still healthy.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]string)
	status := Healthy

	for _, ch := range s.channels {
		key := "channel:" + ch.Name()
		if ch.Ready() {
			checks[key] = CheckLive
		} else {
			checks[key] = CheckError
			status = Degraded
		}
	}

	switch {
	case !s.catalog.Ready():
		checks["catalog"] = CheckError
		status = Degraded
	case s.catalog.IsFallback():
		checks["catalog"] = CheckFallback
	default:
		checks["catalog"] = CheckLive
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			status = Degraded
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
