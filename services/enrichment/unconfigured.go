package enrichment

import (
	"context"
	"log"
)

// UnconfiguredEnrichmentService is used when no issue tracker credentials are configured
type UnconfiguredEnrichmentService struct{}

// NewUnconfiguredEnrichmentService creates a new unconfigured enrichment service
func NewUnconfiguredEnrichmentService() *UnconfiguredEnrichmentService {
	return &UnconfiguredEnrichmentService{}
}

func (s *UnconfiguredEnrichmentService) Enrich(ctx context.Context, userID, text string) error {
	if key := ExtractIssueKey(text); key.IsPresent() {
		log.Printf("⚠️ Skipping enrichment for %s - Jira is not configured", key.MustGet())
	}
	return nil
}
