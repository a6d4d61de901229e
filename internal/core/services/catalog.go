package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driving"
	"github.com/tidewater-labs/lakeview-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService samples the lake to report what kinds exist and what
// their fields look like.
type CatalogService struct {
	store driven.ContentStore

	// defaultKinds, when non-empty, replaces kind discovery in
	// summary mode.
	defaultKinds []string
}

// CatalogOption configures the catalog service.
type CatalogOption func(*CatalogService)

// WithDefaultKinds restricts summary mode to a configured kind list
// instead of discovering kinds from the lake.
func WithDefaultKinds(kinds []string) CatalogOption {
	return func(s *CatalogService) {
		s.defaultKinds = kinds
	}
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.ContentStore, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DescribeKind samples one kind in detail.
func (s *CatalogService) DescribeKind(ctx context.Context, kind string) (*domain.KindSummary, error) {
	if kind == "" {
		return nil, domain.ErrKindRequired
	}
	return s.describe(ctx, kind, true)
}

// DescribeAll summarises every known kind. Kinds are sampled
// concurrently since they target independent documents; a kind whose
// sampling fails is skipped with a warning rather than failing the
// whole summary.
func (s *CatalogService) DescribeAll(ctx context.Context) (*domain.Catalog, error) {
	logger.Section("Catalog Summary")

	kinds := s.defaultKinds
	if len(kinds) == 0 {
		discovered, err := s.store.ListKinds(ctx)
		if err != nil {
			return nil, fmt.Errorf("list kinds: %w", err)
		}
		kinds = discovered
	}
	logger.Debug("Summarising %d kinds", len(kinds))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		summaries []domain.KindSummary
	)

	for _, kind := range kinds {
		wg.Add(1)
		go func(kind string) {
			defer wg.Done()

			summary, err := s.describe(ctx, kind, false)
			if err != nil {
				logger.Warn("Skipping kind %q: %v", kind, err)
				return
			}

			mu.Lock()
			summaries = append(summaries, *summary)
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Kind < summaries[j].Kind
	})

	return &domain.Catalog{Kinds: summaries}, nil
}

// describe builds one kind summary. includeAvg additionally computes
// the average flattened-text length over recent samples, which costs
// an extra projected fetch and is reserved for detail mode.
func (s *CatalogService) describe(ctx context.Context, kind string, includeAvg bool) (*domain.KindSummary, error) {
	count, err := s.store.Count(ctx, domain.Query{Kinds: []string{kind}})
	if err != nil {
		return nil, fmt.Errorf("count %s documents: %w", kind, err)
	}

	samples, err := s.store.Query(ctx, domain.Query{
		Kinds: []string{kind},
		Order: domain.OrderUpdatedDesc,
		Limit: domain.CatalogSampleSize,
	})
	if err != nil {
		return nil, fmt.Errorf("sample %s documents: %w", kind, err)
	}

	summary := &domain.KindSummary{
		Kind:  kind,
		Count: count,
	}

	types := make(map[string]domain.TypeTag)
	for _, doc := range samples {
		for _, name := range doc.FieldNames() {
			tag := domain.Classify(doc.Fields[name])
			if existing, seen := types[name]; !seen || existing == domain.TagUnknown {
				types[name] = tag
			}
		}

		if summary.EarliestUpdated.IsZero() || doc.UpdatedAt.Before(summary.EarliestUpdated) {
			summary.EarliestUpdated = doc.UpdatedAt
		}
		if doc.UpdatedAt.After(summary.LatestUpdated) {
			summary.LatestUpdated = doc.UpdatedAt
		}

		summary.Samples = append(summary.Samples, domain.DocumentSample{
			ID:    doc.ID,
			Title: doc.Title(),
		})
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		summary.Fields = append(summary.Fields, domain.FieldInfo{Name: name, Type: types[name]})
		if !domain.IsSystemField(name) && types[name].IsSearchable() {
			summary.SearchableFields = append(summary.SearchableFields, name)
		}
	}

	if includeAvg && len(samples) > 0 {
		summary.AvgContentLength = s.averageContentLength(ctx, samples)
	}

	return summary, nil
}

// averageContentLength flattens up to CatalogFlattenSamples recent
// documents and averages their text lengths. Best-effort: a failed
// projected fetch just leaves the average at zero.
func (s *CatalogService) averageContentLength(ctx context.Context, samples []domain.Document) int {
	n := len(samples)
	if n > domain.CatalogFlattenSamples {
		n = domain.CatalogFlattenSamples
	}

	proj := domain.BuildFlattenProjection(samples[0])

	docs := samples[:n]
	if !proj.IsPassthrough() {
		ids := make([]string, n)
		for i := 0; i < n; i++ {
			ids[i] = samples[i].ID
		}

		projected, err := s.store.Query(ctx, domain.Query{
			IDs:        ids,
			Projection: &proj,
			Limit:      n,
		})
		if err != nil {
			logger.Warn("Flattened-length sampling failed: %v", err)
			return 0
		}
		docs = projected
	}

	if len(docs) == 0 {
		return 0
	}

	total := 0
	for _, doc := range docs {
		total += len(domain.Flatten(doc, proj))
	}
	return total / len(docs)
}
