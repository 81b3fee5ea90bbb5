package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveHTML writes the rendered HTML report
func (s *FileStorage) SaveHTML(data []byte) (string, error) {
	path := s.cfg.GetReportPath()
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// SaveJSON writes the JSON report when a path is configured
func (s *FileStorage) SaveJSON(data []byte) (string, error) {
	path := s.cfg.GetJSONPath()
	if path == "" {
		return "", nil
	}
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("write json report: %w", err)
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
