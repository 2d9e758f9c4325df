// Package dataset maintains the event data directory: one JSON object per
// event file, an index.json listing them and the merged all.json.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/twdsco/hackertracker/internal/log"
)

// Reserved file names inside the events directory.
const (
	IndexFile = "index.json"
	AllFile   = "all.json"
)

var (
	// ErrInvalidIndex is returned when index.json is not an array of names.
	ErrInvalidIndex = errors.New("index.json must be a JSON array of filenames")
	// ErrNotObject is returned when an event file does not hold a JSON object.
	ErrNotObject = errors.New("event file must contain a JSON object")
)

// BuildResult summarizes a BuildAll run.
type BuildResult struct {
	Count   int
	Missing []string
}

// BuildAll merges every event file named by indexPath (resolved against
// dir) into outPath. Missing files are skipped with a warning. Key order
// inside each event is preserved.
func BuildAll(indexPath, dir, outPath string) (BuildResult, error) {
	var res BuildResult

	if _, err := os.Stat(indexPath); err != nil {
		return res, fmt.Errorf("missing index at %s: %w", indexPath, err)
	}
	names, err := ReadIndex(indexPath)
	if err != nil {
		return res, err
	}

	merged := make([]json.RawMessage, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("missing event file", "path", path)
			res.Missing = append(res.Missing, name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("reading event file: %w", err)
		}
		obj, err := decodeObject(data)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
		merged = append(merged, obj)
	}

	if err := WriteJSON(outPath, merged); err != nil {
		return res, err
	}
	res.Count = len(merged)
	log.Info("wrote merged events", "path", outPath, "count", res.Count)
	return res, nil
}

// decodeObject checks that data is a single JSON object and returns it verbatim.
func decodeObject(data []byte) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if t := bytes.TrimSpace(raw); len(t) == 0 || t[0] != '{' {
		return nil, ErrNotObject
	}
	return raw, nil
}

// ReadIndex reads the list of event file names. A missing index is empty.
func ReadIndex(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
	}
	if entries == nil {
		return nil, ErrInvalidIndex
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%w: entries must be strings", ErrInvalidIndex)
		}
		names = append(names, name)
	}
	return names, nil
}

// SyncOptions controls SyncIndex.
type SyncOptions struct {
	// Created lists newly added event files, as names relative to the
	// events directory or as paths inside it.
	Created []string
	// Scan adds every event file found in the directory.
	Scan bool
}

// SyncIndex rewrites indexPath so that it lists the event files that still
// exist plus the created ones, de-duplicated and sorted.
func SyncIndex(indexPath, dir string, opts SyncOptions) ([]string, error) {
	current, err := ReadIndex(indexPath)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(current)+len(opts.Created))
	for _, name := range current {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err == nil {
			set[name] = struct{}{}
		}
	}
	for _, created := range opts.Created {
		created = strings.TrimSpace(created)
		if created == "" {
			continue
		}
		set[relativeName(dir, created)] = struct{}{}
	}
	if opts.Scan {
		scanned, err := scanDir(dir)
		if err != nil {
			return nil, err
		}
		for _, name := range scanned {
			set[name] = struct{}{}
		}
	}

	files := make([]string, 0, len(set))
	for name := range set {
		files = append(files, name)
	}
	sort.Strings(files)

	if err := WriteJSON(indexPath, files); err != nil {
		return nil, err
	}
	log.Info("index updated", "path", indexPath, "files", len(files))
	return files, nil
}

// relativeName turns a path inside dir into an index entry.
func relativeName(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

// scanDir lists the event files under dir, skipping the index and merged files.
func scanDir(dir string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel := relativeName(dir, path)
		if rel == IndexFile || rel == AllFile {
			return nil
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return names, nil
}

// WriteJSON writes v with 4-space indentation, unescaped text and a
// trailing newline.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
