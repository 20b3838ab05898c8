package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-desk/internal/domain/alarm"
)

// Config holds connection and storage parameters shared by the alarm-desk binaries.
type Config struct {
	// ServerAddress is the gRPC server address for alarm desk connections.
	ServerAddress string `yaml:"server_addr"`
	// StateFile is the path to the JSON file storing the alarm working set.
	StateFile string `yaml:"state_file"`
	// SeedFile is an optional YAML file with the initial alarms.
	// The built-in seed is used when it is empty.
	SeedFile string `yaml:"seed_file,omitempty"`
	// MetricsAddress enables the Prometheus /metrics listener when set.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// MuteSweepInterval is how often expired mutes are lifted.
	MuteSweepInterval time.Duration `yaml:"mute_sweep_interval"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`
	// Assignees is the roster alarms can be assigned to.
	Assignees []alarm.Assignee `yaml:"assignees,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-desk-settings.yaml"

	// DefaultStateFilename is the default filename for the alarm working set.
	DefaultStateFilename = "alarm-desk-state.json"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultMuteSweepInterval is the default period of the mute expiry check.
	DefaultMuteSweepInterval = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config and state files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errServerSocketRequired is returned when server address is missing.
	errServerSocketRequired = errors.New("server address must be provided")
	// errAssigneeIDRequired is returned for a roster entry without id or name.
	errAssigneeIDRequired = errors.New("assignee id and name must be provided")
	// errDuplicateAssignee is returned when two roster entries share an id.
	errDuplicateAssignee = errors.New("duplicate assignee id")
)

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes Config to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting
// and fills in defaults for optional ones.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ServerAddress == "" {
		return errServerSocketRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics socket: %w", err)
		}
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.MuteSweepInterval <= 0 {
		settings.MuteSweepInterval = DefaultMuteSweepInterval
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	if len(settings.Assignees) == 0 {
		settings.Assignees = alarm.DefaultAssignees()

		return nil
	}

	seen := make(map[string]struct{}, len(settings.Assignees))
	for _, assignee := range settings.Assignees {
		if assignee.ID == "" || assignee.Name == "" {
			return errAssigneeIDRequired
		}

		if _, ok := seen[assignee.ID]; ok {
			return fmt.Errorf("%w: %s", errDuplicateAssignee, assignee.ID)
		}

		seen[assignee.ID] = struct{}{}
	}

	return nil
}
