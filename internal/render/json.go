package render

import (
	"encoding/json"
	"fmt"
)

// RenderJSON encodes the report data for machine consumption
func RenderJSON(data Data) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}
