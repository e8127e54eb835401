package frames

import (
	"encoding/json"
	"os"
)

// ManifestEntry describes one rendered frame.
type ManifestEntry struct {
	Frame    int     `json:"frame"`
	SampleID int64   `json:"sample_id"`
	Outcome  string  `json:"outcome"`
	Features int     `json:"features"`
	Image    string  `json:"image,omitempty"`
	Coverage float64 `json:"coverage"`
	Error    string  `json:"error,omitempty"`
}

// WriteManifest writes the frame list as indented JSON.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Frame:    r.Frame,
			SampleID: r.SampleID,
			Outcome:  r.Outcome,
			Features: r.Features,
			Image:    r.Image,
			Coverage: r.Coverage,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
