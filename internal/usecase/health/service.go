package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Service string
	Version string
	Status  Status
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	service string
	version string
	engine  EnginePinger
}

// New creates a Service.
func New(service, version string, engine EnginePinger) *Service {
	return &Service{service: service, version: version, engine: engine}
}

// Check runs health checks against all components. All checks failing yields
// Unhealthy, a partial failure Degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
	} else {
		checks["engine"] = CheckOK
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		if failed > 0 {
			status = Unhealthy
		}
	case failed > 0:
		status = Degraded
	}

	return Report{
		Service: s.service,
		Version: s.version,
		Status:  status,
		Checks:  checks,
	}
}
