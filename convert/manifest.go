package convert

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

// Manifest records what went into a converted document file.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Dataset   string    `json:"dataset,omitempty"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	IDField   string    `json:"id_field"`
	Records   int64     `json:"records"`
	SHA1      string    `json:"sha1"`
	Completed time.Time `json:"completed"`
}

// NewManifest creates a manifest for a finished run, with a fresh run id.
func NewManifest(dataset, input, output, idField string, stats Stats) *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		Dataset:   dataset,
		Input:     input,
		Output:    output,
		IDField:   idField,
		Records:   stats.Records,
		SHA1:      stats.SHA1,
		Completed: time.Now().UTC(),
	}
}

// ManifestPath returns the manifest location for an output file.
func ManifestPath(output string) string {
	return output + ".manifest.json"
}

// WriteFile writes the manifest as indented JSON.
func (m *Manifest) WriteFile(filename string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(filename, b, 0644)
}

// ReadManifest reads a manifest written by WriteFile.
func ReadManifest(filename string) (*Manifest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
