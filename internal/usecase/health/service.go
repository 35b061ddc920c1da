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
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks across the relational store, the vector
// store, and the embedding provider.
type Service struct {
	relational Pinger
	vector     Pinger
	embedding  EmbeddingChecker
}

// New creates a Service. vector and embedding can be nil.
func New(relational, vector Pinger, embedding EmbeddingChecker) *Service {
	return &Service{relational: relational, vector: vector, embedding: embedding}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["database"] = check(s.relational.Ping(ctx))

	if s.vector != nil {
		checks["vector_store"] = check(s.vector.Ping(ctx))
	}

	if s.embedding != nil {
		checks["embedding"] = check(s.embedding.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func check(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
