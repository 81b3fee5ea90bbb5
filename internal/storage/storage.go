package storage

import "htmlreporter/internal/config"

// Storage writes the documents produced for a run
type Storage interface {
	// SaveHTML writes the HTML report and returns the path written
	SaveHTML(data []byte) (string, error)
	// SaveJSON writes the JSON report and returns the path written, or ""
	// when no JSON report is configured
	SaveJSON(data []byte) (string, error)
}

// FileStorage writes reports to the paths in the config
type FileStorage struct {
	cfg *config.Config
}

// NewFileStorage returns a Storage that writes to the config's report paths
func NewFileStorage(cfg *config.Config) *FileStorage {
	return &FileStorage{cfg: cfg}
}
