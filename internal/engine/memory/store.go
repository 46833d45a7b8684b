// Package memory implements the engine client over an in-process bleve
// index. It exists for local development and tests: the service runs with no
// cluster, seeded from a JSON file. Relevance approximates the cluster's
// recipe rather than reproducing it exactly.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/jobdex/internal/domain/job"
	"github.com/kailas-cloud/jobdex/internal/engine"
)

// Compile-time check: Store implements engine.Client.
var _ engine.Client = (*Store)(nil)

// Store implements engine.Client over a memory-only bleve index.
type Store struct {
	name  string
	index bleve.Index

	mu   sync.RWMutex
	docs map[string]json.RawMessage // raw documents by id, exactly as ingested
}

// NewStore creates an empty in-memory index serving the named logical index.
func NewStore(name string) (*Store, error) {
	if name == "" {
		return nil, fmt.Errorf("index name is required")
	}

	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &Store{
		name:  name,
		index: idx,
		docs:  make(map[string]json.RawMessage),
	}, nil
}

// buildMapping declares the index like the cluster does: analyzed text for
// full-text fields, keyword companions for exact filters and sorts, numeric
// for salary bounds.
func buildMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	numericField := bleve.NewNumericFieldMapping()

	doc := bleve.NewDocumentMapping()
	for _, name := range []string{
		"title", "description", "summary", "organisation",
		"location", "profession", "grade",
	} {
		doc.AddFieldMappingsAt(name, textField)
	}
	for _, name := range []string{
		"id", "titleExact", "organisationExact", "locationExact",
		"gradeExact", "professionExact", "assignmentType",
		"workingPattern", "workLocation", "approach", "closingDate",
	} {
		doc.AddFieldMappingsAt(name, keywordField)
	}
	doc.AddFieldMappingsAt("salaryMinimum", numericField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Index ingests one raw document. The raw bytes are what later comes back as
// a hit source; the indexed representation is flattened from the normalized
// item so both stored generations are searchable the same way.
func (s *Store) Index(doc json.RawMessage) error {
	item, _ := job.FromSource(doc) // degraded documents stay searchable by what normalized
	if item.ID == "" {
		return fmt.Errorf("document has no id")
	}

	if err := s.index.Index(item.ID, flatten(item)); err != nil {
		return fmt.Errorf("index document %s: %w", item.ID, err)
	}

	raw := make(json.RawMessage, len(doc))
	copy(raw, doc)

	s.mu.Lock()
	s.docs[item.ID] = raw
	s.mu.Unlock()
	return nil
}

// Seed ingests a JSON array of raw documents from a file and returns how many
// were indexed.
func (s *Store) Seed(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	for i, doc := range docs {
		if err := s.Index(doc); err != nil {
			return i, fmt.Errorf("seed document %d: %w", i, err)
		}
	}
	return len(docs), nil
}

// Ping always succeeds; the index lives in-process.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close releases the index.
func (s *Store) Close() {
	_ = s.index.Close()
}

// WaitForReady returns immediately; there is nothing to wait for.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// flatten projects a normalized item onto the indexed field set.
func flatten(item job.Job) map[string]any {
	towns := make([]string, 0, len(item.Location))
	for _, p := range item.Location {
		towns = append(towns, p.TownName)
	}

	doc := map[string]any{
		"id":                item.ID,
		"title":             item.Title,
		"titleExact":        item.Title,
		"description":       item.Description,
		"summary":           item.Summary,
		"organisation":      item.Organisation,
		"organisationExact": item.Organisation,
		"location":          strings.Join(towns, ", "),
		"locationExact":     towns,
		"grade":             item.Grade,
		"gradeExact":        item.Grade,
		"profession":        item.Profession,
		"professionExact":   item.Profession,
		"assignmentType":    item.AssignmentType,
		"workingPattern":    item.WorkingPattern,
		"workLocation":      item.WorkLocation,
		"approach":          item.Approach,
	}
	if item.Salary.Minimum != nil {
		doc["salaryMinimum"] = *item.Salary.Minimum
	}
	if item.ClosingDate != nil {
		doc["closingDate"] = item.ClosingDate.Format("2006-01-02")
	}
	return doc
}
