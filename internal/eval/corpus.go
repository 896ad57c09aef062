package eval

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// audioExts is the discovery allow-list, matched case-insensitively.
var audioExts = map[string]bool{
	".wav":  true,
	".flac": true,
	".mp3":  true,
	".m4a":  true,
}

// Item is a discovered input paired with its resolved reference text.
type Item struct {
	ID   string // file name (file-reference mode) or path relative to the audio dir (folder-label mode)
	Path string
	Ref  string
}

// Skipped is a discovered input that could not be paired. It is excluded
// from scoring but reported, so no input silently disappears.
type Skipped struct {
	ID     string `json:"file"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// isAudioFile reports whether name carries an allow-listed extension.
func isAudioFile(name string) bool {
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// PairFiles discovers audio files directly under audioDir and resolves each
// to the sibling <stem>.txt inside refDir. Inputs without a reference file
// are skipped, not failed. os.ReadDir returns entries sorted by name, so
// discovery order is deterministic across platforms.
func PairFiles(audioDir, refDir string) ([]Item, []Skipped, error) {
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading audio dir: %w", err)
	}

	var items []Item
	var skipped []Skipped

	for _, entry := range entries {
		if entry.IsDir() || !isAudioFile(entry.Name()) {
			continue
		}

		path := filepath.Join(audioDir, entry.Name())
		refName := stem(entry.Name()) + ".txt"
		refData, err := os.ReadFile(filepath.Join(refDir, refName))
		if errors.Is(err, fs.ErrNotExist) {
			skipped = append(skipped, Skipped{
				ID:     entry.Name(),
				Path:   path,
				Reason: "no reference file " + refName,
			})
			continue
		}
		if err != nil {
			// The file was expected once discovery resolved it; a read
			// failure here is exceptional and fails the run.
			return nil, nil, fmt.Errorf("reading reference for %s: %w", entry.Name(), err)
		}

		items = append(items, Item{
			ID:   entry.Name(),
			Path: path,
			Ref:  string(refData),
		})
	}

	return items, skipped, nil
}

// PairLabels discovers audio files recursively under the per-label
// subdirectories of audioDir; each file's reference is its label directory
// name. Audio files directly under audioDir have no label and are skipped.
func PairLabels(audioDir string) ([]Item, []Skipped, error) {
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading audio dir: %w", err)
	}

	var items []Item
	var skipped []Skipped

	for _, entry := range entries {
		if !entry.IsDir() {
			if isAudioFile(entry.Name()) {
				skipped = append(skipped, Skipped{
					ID:     entry.Name(),
					Path:   filepath.Join(audioDir, entry.Name()),
					Reason: "no label directory",
				})
			}
			continue
		}

		label := entry.Name()
		labelDir := filepath.Join(audioDir, label)
		// WalkDir visits entries in lexical order.
		err := filepath.WalkDir(labelDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isAudioFile(d.Name()) {
				return nil
			}

			rel, err := filepath.Rel(audioDir, path)
			if err != nil {
				return err
			}
			items = append(items, Item{
				ID:   rel,
				Path: path,
				Ref:  label,
			})
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("walking label %s: %w", label, err)
		}
	}

	return items, skipped, nil
}
