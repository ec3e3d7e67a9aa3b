// Package projectstore persists the list of tracked legislative
// projects as a JSON file. Monitors for both portals share one file and
// update only the entries belonging to their source.
package projectstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"horizon-monitoring/lib/scrapers/sejm"
)

type Source string

const (
	SourceRCL  Source = "rcl"
	SourceSejm Source = "sejm"
)

// TrackedItem is one monitored project. For RCL entries ID is the
// portal's project id, for Sejm entries it is the print number.
type TrackedItem struct {
	ID         int64        `json:"id"`
	Source     Source       `json:"source,omitempty"`
	Title      string       `json:"title,omitempty"`
	Number     string       `json:"number,omitempty"`
	Term       string       `json:"term,omitempty"`
	LastHit    string       `json:"last_hit,omitempty"`
	ReferredTo []sejm.Stage `json:"referred_to,omitempty"`
}

// UnmarshalJSON accepts both the object form and the legacy form where
// an entry is just a bare project id. Ids are hand-edited and show up
// as numbers or numeric strings, in either form.
func (t *TrackedItem) UnmarshalJSON(data []byte) error {
	var id json.Number
	if err := json.Unmarshal(data, &id); err == nil {
		parsed, err := id.Int64()
		if err != nil {
			return fmt.Errorf("invalid project id %q", id)
		}
		*t = TrackedItem{ID: parsed}
		return nil
	}

	type plain TrackedItem
	var item struct {
		plain
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*t = TrackedItem(item.plain)
	if item.ID != "" {
		parsed, err := item.ID.Int64()
		if err != nil {
			return fmt.Errorf("invalid project id %q", item.ID)
		}
		t.ID = parsed
	}
	return nil
}

type projectsFile struct {
	Projects []TrackedItem `json:"projects"`
}

// Store reads and writes the tracked-projects file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() ([]TrackedItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading projects file: %w", err)
	}
	var file projectsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding projects file %s: %w", s.path, err)
	}
	return file.Projects, nil
}

func (s *Store) Save(items []TrackedItem) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := EncodeProjects(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// EncodeProjects renders items in the projects-file format, with
// Polish text kept readable instead of escaped.
func EncodeProjects(items []TrackedItem) ([]byte, error) {
	if items == nil {
		items = []TrackedItem{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(projectsFile{Projects: items}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FilterBySource returns the items belonging to one portal, in file
// order.
func FilterBySource(items []TrackedItem, source Source) []TrackedItem {
	var filtered []TrackedItem
	for _, item := range items {
		if item.Source == source {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// EnsureSource returns a copy of item with Source set when missing.
func EnsureSource(item TrackedItem, source Source) TrackedItem {
	if item.Source == "" {
		item.Source = source
	}
	return item
}

// Merge overlays processed items on top of all by id. Entries keep
// their original position, unknown ids are appended in processed
// order. Items untouched by a monitor pass through unchanged.
func Merge(all, processed []TrackedItem) []TrackedItem {
	merged := make([]TrackedItem, len(all))
	index := make(map[int64]int, len(all))
	for i, item := range all {
		merged[i] = item
		index[item.ID] = i
	}
	for _, item := range processed {
		if i, ok := index[item.ID]; ok {
			merged[i] = item
		} else {
			index[item.ID] = len(merged)
			merged = append(merged, item)
		}
	}
	return merged
}
