package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

// LoadThresholds reads an RFM threshold preset from a YAML file:
//
//	recency:   [30, 90, 180, 365]
//	frequency: [1, 3, 5, 10]
//	monetary:  [100, 500, 1000, 5000]
func LoadThresholds(path string) (*report.RFMThresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read thresholds file: %w", err)
	}

	var t report.RFMThresholds
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("could not parse thresholds file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds in %s: %w", path, err)
	}
	return &t, nil
}
