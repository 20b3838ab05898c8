package alarms

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/alarm-desk/internal/domain/alarm"
)

// seedDocument is the YAML layout of a seed file.
type seedDocument struct {
	Alarms []*domain.Alarm `yaml:"alarms"`
}

// LoadSeed reads the initial alarms from a YAML file.
// An empty path returns DefaultSeed.
func LoadSeed(path string) ([]*domain.Alarm, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var doc seedDocument
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal seed file: %w", err)
	}

	if err = domain.ValidateSet(doc.Alarms); err != nil {
		return nil, fmt.Errorf("validate seed file: %w", err)
	}

	return doc.Alarms, nil
}

// DefaultSeed returns the built-in working set.
func DefaultSeed() []*domain.Alarm {
	return []*domain.Alarm{
		{
			ID:          "AL-001",
			Device:      "Spot-1",
			Status:      domain.StatusMuted,
			Description: "robot is stuck",
			TimeElapsed: "144h 15m 56s",
			Severity:    domain.SeverityWarning,
		},
		{
			ID:          "AL-002",
			Device:      "Spot-2",
			Status:      domain.StatusAcknowledged,
			Description: "battery low",
			AssignedTo:  domain.Name("John Doe"),
			TimeElapsed: "2h 30m 15s",
			Severity:    domain.SeverityInfo,
		},
		{
			ID:          "AL-003",
			Device:      "Atlas-1",
			Status:      domain.StatusUnacknowledged,
			Description: "connection lost",
			Urgent:      true,
			TimeElapsed: "48h 20m 10s",
			Severity:    domain.SeverityCritical,
		},
	}
}
