package engine

import (
	"encoding/json"
	"fmt"
)

// SearchResponse is the engine's reply to a search request.
type SearchResponse struct {
	Took     int        `json:"took"`
	TimedOut bool       `json:"timed_out"`
	Hits     HitsResult `json:"hits"`
}

// HitsResult contains the search hits.
type HitsResult struct {
	Total    HitsTotal `json:"total"`
	MaxScore *float64  `json:"max_score"`
	Hits     []Hit     `json:"hits"`
}

// HitsTotal is the engine's total hit count. Relation is "eq" when the count
// is exact and "gte" when the engine stopped counting.
type HitsTotal struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// UnmarshalJSON accepts both the object form and the bare integer that
// pre-7.x clusters and some compatible engines still emit.
func (t *HitsTotal) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		type plain HitsTotal
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*t = HitsTotal(p)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("total is neither an object nor an integer: %w", err)
	}
	t.Value = n
	t.Relation = "eq"
	return nil
}

// Hit is a single document hit. Source stays raw; normalization belongs to
// the domain layer.
type Hit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source"`
}
