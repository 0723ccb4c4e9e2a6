package openalex

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Meta is the metadata block attached to every list or group-by response.
type Meta struct {
	Count            int     `json:"count"                  yaml:"count"`
	DBResponseTimeMS int     `json:"db_response_time_ms"    yaml:"db_response_time_ms"`
	Page             *int    `json:"page"                   yaml:"page"`
	PerPage          int     `json:"per_page"               yaml:"per_page"`
	NextCursor       *string `json:"next_cursor,omitempty"  yaml:"next_cursor,omitempty"`
	GroupsCount      *int    `json:"groups_count,omitempty" yaml:"groups_count,omitempty"`
}

// Entity is one decoded record from any resource collection. The API's
// entity schemas are open-ended, so records stay as key-value documents with
// typed accessors for the common fields.
type Entity map[string]any

// ID returns the entity's canonical identifier, or "".
func (e Entity) ID() string {
	id, _ := e["id"].(string)

	return id
}

// DisplayName returns the entity's display name, or "".
func (e Entity) DisplayName() string {
	name, _ := e["display_name"].(string)

	return name
}

// ShortID returns the trailing segment of the canonical identifier, e.g.
// "W2741809807" for "https://openalex.org/W2741809807".
func (e Entity) ShortID() string {
	id := e.ID()
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}

	return id
}

// Work is a work record. It carries the derived abstract accessor on top of
// the generic entity document.
type Work map[string]any

// ID returns the work's canonical identifier, or "".
func (w Work) ID() string { return Entity(w).ID() }

// DisplayName returns the work's display name, or "".
func (w Work) DisplayName() string { return Entity(w).DisplayName() }

// ShortID returns the trailing segment of the work's identifier.
func (w Work) ShortID() string { return Entity(w).ShortID() }

// Abstract reconstructs the plain-text abstract from the stored inverted
// index. It is a derived, read-only field: the document itself is not
// modified. Returns "" when no inverted index is present.
func (w Work) Abstract() string {
	index, ok := w["abstract_inverted_index"].(map[string]any)
	if !ok {
		return ""
	}

	return invertDecodedAbstract(index)
}

// PDFURL returns the bulk-content location of the work's PDF.
func (w Work) PDFURL() string {
	return DefaultContentURL + "/works/" + w.ShortID() + ".pdf"
}

// TEIURL returns the bulk-content location of the work's TEI (grobid-xml)
// representation.
func (w Work) TEIURL() string {
	return DefaultContentURL + "/works/" + w.ShortID() + ".grobid-xml"
}

// The remaining collections share the generic entity document.
type (
	Author      = Entity
	Source      = Entity
	Institution = Entity
	Concept     = Entity
	Topic       = Entity
	Publisher   = Entity
	Funder      = Entity
	Keyword     = Entity
	Domain      = Entity
	Field       = Entity
	Subfield    = Entity
)

// GroupBucket is one bucket of a group-by aggregation.
type GroupBucket struct {
	Key            string `json:"key"              yaml:"key"`
	KeyDisplayName string `json:"key_display_name" yaml:"key_display_name"`
	Count          int    `json:"count"            yaml:"count"`
}

// ListResult is a decoded results page: either entity records or, for
// group-by queries, aggregation buckets, plus the response metadata.
type ListResult[T ~map[string]any] struct {
	Meta    Meta
	Results []T
	Groups  []GroupBucket
}

// Ngram is one n-gram extracted from a work's full text.
type Ngram struct {
	Ngram         string  `json:"ngram"          yaml:"ngram"`
	NgramCount    int     `json:"ngram_count"    yaml:"ngram_count"`
	NgramTokens   int     `json:"ngram_tokens"   yaml:"ngram_tokens"`
	TermFrequency float64 `json:"term_frequency" yaml:"term_frequency"`
}

// NgramsResult is the response of a work's ngrams endpoint.
type NgramsResult struct {
	Meta   Meta    `json:"meta"   yaml:"meta"`
	Ngrams []Ngram `json:"ngrams" yaml:"ngrams"`
}

// InvertAbstract reconstructs a plain-text abstract from an inverted index
// mapping each word to its occurrence positions.
func InvertAbstract(index map[string][]int) string {
	type occurrence struct {
		word string
		pos  int
	}

	var occurrences []occurrence

	for word, positions := range index {
		for _, pos := range positions {
			occurrences = append(occurrences, occurrence{word: word, pos: pos})
		}
	}

	sort.Slice(occurrences, func(i, j int) bool { return occurrences[i].pos < occurrences[j].pos })

	words := make([]string, len(occurrences))
	for i, occ := range occurrences {
		words[i] = occ.word
	}

	return strings.Join(words, " ")
}

// invertDecodedAbstract handles the index as it appears after generic JSON
// decoding, where positions arrive as []any of float64.
func invertDecodedAbstract(index map[string]any) string {
	converted := make(map[string][]int, len(index))

	for word, raw := range index {
		positions, ok := raw.([]any)
		if !ok {
			continue
		}

		for _, p := range positions {
			if pos, ok := p.(float64); ok {
				converted[word] = append(converted[word], int(pos))
			}
		}
	}

	return InvertAbstract(converted)
}

// DecodeList decides the response shape from the body: a group-by
// aggregation when the query grouped, otherwise a results page. Any other
// shape is a contract violation.
func DecodeList[T ~map[string]any](body []byte, grouped bool) (*ListResult[T], error) {
	var raw struct {
		Meta    *Meta            `json:"meta"`
		Results []map[string]any `json:"results"`
		GroupBy []GroupBucket    `json:"group_by"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if raw.Meta == nil {
		return nil, fmt.Errorf("%w: missing meta", ErrUnexpectedResponse)
	}

	result := &ListResult[T]{Meta: *raw.Meta}

	if grouped {
		if raw.GroupBy == nil {
			return nil, fmt.Errorf("%w: missing group_by", ErrUnexpectedResponse)
		}

		result.Groups = raw.GroupBy

		return result, nil
	}

	if raw.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrUnexpectedResponse)
	}

	result.Results = make([]T, len(raw.Results))
	for i, record := range raw.Results {
		result.Results[i] = T(record)
	}

	return result, nil
}

// decodeEntity decodes a singleton fetch. A body without an id is not an
// entity and signals a contract violation.
func decodeEntity[T ~map[string]any](body []byte) (T, error) {
	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("parsing entity: %w", err)
	}

	if _, ok := record["id"]; !ok {
		return nil, fmt.Errorf("%w: missing id", ErrUnexpectedResponse)
	}

	return T(record), nil
}
