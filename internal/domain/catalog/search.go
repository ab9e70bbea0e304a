package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// searchDocument is the indexed shape of a catalog component.
type searchDocument struct {
	ID          string  `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Region      string  `json:"region"`
	UnitCost    float64 `json:"unit_cost"`
}

// SearchHit is one search result with its relevance score.
type SearchHit struct {
	ID          string  `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// SearchIndex is a Bleve full-text index over catalog components, used by
// the UI to find existing parts before creating duplicates.
type SearchIndex struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewSearchIndex creates or opens the index. An empty path means in-memory.
func NewSearchIndex(path string) (*SearchIndex, error) {
	indexMapping := buildComponentMapping()

	var index bleve.Index
	var err error
	switch {
	case path == "":
		index, err = bleve.NewMemOnly(indexMapping)
	default:
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o755); mkdirErr != nil {
				return nil, fmt.Errorf("failed to create index directory: %w", mkdirErr)
			}
			index, err = bleve.New(path, indexMapping)
		} else {
			index, err = bleve.Open(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create/open search index: %w", err)
	}

	return &SearchIndex{index: index}, nil
}

func buildComponentMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("make", textFieldMapping)
	docMapping.AddFieldMappingsAt("model", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("description", textFieldMapping)
	docMapping.AddFieldMappingsAt("region", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("unit_cost", bleve.NewNumericFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// IndexComponents (re)indexes the given components in one batch.
func (si *SearchIndex) IndexComponents(components []ComponentRecord) error {
	si.mu.Lock()
	defer si.mu.Unlock()

	batch := si.index.NewBatch()
	for _, c := range components {
		doc := searchDocument{
			ID:          c.ID.String(),
			Make:        c.Make,
			Model:       c.Model,
			Description: c.Description,
			Region:      c.Region,
			UnitCost:    c.UnitCost,
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to batch component %s: %w", doc.ID, err)
		}
	}

	if err := si.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index components: %w", err)
	}
	return nil
}

// Search runs a fuzzy-tolerant match query over make, model, and
// description.
func (si *SearchIndex) Search(queryText string, limit int) ([]SearchHit, error) {
	si.mu.RLock()
	defer si.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(queryText)
	matchQuery.SetFuzziness(1)

	request := bleve.NewSearchRequestOptions(matchQuery, limit, 0, false)
	request.Fields = []string{"make", "model", "description"}

	result, err := si.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		h := SearchHit{ID: hit.ID, Score: hit.Score}
		if v, ok := hit.Fields["make"].(string); ok {
			h.Make = v
		}
		if v, ok := hit.Fields["model"].(string); ok {
			h.Model = v
		}
		if v, ok := hit.Fields["description"].(string); ok {
			h.Description = v
		}
		hits = append(hits, h)
	}
	return hits, nil
}

// Close releases the underlying index.
func (si *SearchIndex) Close() error {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.index.Close()
}
