package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// snapshotFile is the on-disk layout: each map is serialized as an ordered
// list of [key, record] pairs, matching the historical memory.json format.
type snapshotFile struct {
	ShortTerm []pair  `json:"shortTerm"`
	LongTerm  []pair  `json:"longTerm"`
	Episodic  []Event `json:"episodic"`
	Patterns  []pair  `json:"patterns"`
}

type pair [2]json.RawMessage

func encodePairs(m map[string]interface{}) ([]pair, error) {
	pairs := make([]pair, 0, len(m))
	for key, value := range m {
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{k, v})
	}
	return pairs, nil
}

func encodeRecordPairs(m map[string]*Record) ([]pair, error) {
	pairs := make([]pair, 0, len(m))
	for key, rec := range m {
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{k, v})
	}
	return pairs, nil
}

// Persist writes the full memory state to a JSON file, creating parent
// directories as needed. Nothing is pruned on the way out.
func (s *Store) Persist(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("memory: persist: %w", err)
		}
	}

	file := snapshotFile{Episodic: s.episodic}
	var err error
	if file.ShortTerm, err = encodeRecordPairs(s.shortTerm); err != nil {
		return fmt.Errorf("memory: persist: %w", err)
	}
	if file.LongTerm, err = encodeRecordPairs(s.longTerm); err != nil {
		return fmt.Errorf("memory: persist: %w", err)
	}
	if file.Patterns, err = encodePairs(s.patterns); err != nil {
		return fmt.Errorf("memory: persist: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("memory: persist: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("memory: persist: %w", err)
	}
	return nil
}

// Load restores memory state from a JSON file previously written by
// Persist. A missing file is not an error; the store is left empty.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("memory: load: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("memory: load: %w", err)
	}

	for _, p := range file.ShortTerm {
		key, rec, err := decodeRecordPair(p)
		if err != nil {
			return fmt.Errorf("memory: load: %w", err)
		}
		s.shortTerm[key] = rec
	}
	for _, p := range file.LongTerm {
		key, rec, err := decodeRecordPair(p)
		if err != nil {
			return fmt.Errorf("memory: load: %w", err)
		}
		s.longTerm[key] = rec
	}
	s.episodic = file.Episodic
	for _, p := range file.Patterns {
		var key string
		if err := json.Unmarshal(p[0], &key); err != nil {
			return fmt.Errorf("memory: load: %w", err)
		}
		var value interface{}
		if err := json.Unmarshal(p[1], &value); err != nil {
			return fmt.Errorf("memory: load: %w", err)
		}
		s.patterns[key] = value
	}
	return nil
}

func decodeRecordPair(p pair) (string, *Record, error) {
	var key string
	if err := json.Unmarshal(p[0], &key); err != nil {
		return "", nil, err
	}
	rec := &Record{}
	if err := json.Unmarshal(p[1], rec); err != nil {
		return "", nil, err
	}
	return key, rec, nil
}
