// Package config provides configuration types and helpers for logsift.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format    string        `mapstructure:"format"`
	Verbose   bool          `mapstructure:"verbose"`
	ChunkSize int           `mapstructure:"chunk_size"`
	Workers   int           `mapstructure:"workers"`
	OutputDir string        `mapstructure:"output_dir"`
	Patterns  PatternConfig `mapstructure:"patterns"`
	Log       LogConfig     `mapstructure:"log"`
}

// PatternConfig holds configuration for the error pattern library.
type PatternConfig struct {
	// File is the path to a keywords file. When empty or unreadable the
	// built-in rule set is used instead.
	File string `mapstructure:"file"`
}

// FromViper builds a Config from the resolved viper state.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LogConfig holds configuration for the tool's own diagnostic logging.
type LogConfig struct {
	// Level sets the minimum log level: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Format selects the log output format: "console" or "json"
	Format string `mapstructure:"format"`
}

// Severity classifies how serious a detected error is.
// The zero value is SeverityInfo, the weakest level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists all severity levels from strongest to weakest.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

// String returns the string representation of a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	default:
		return "INFO"
	}
}

// Rank returns the ordering position of a severity. Stronger severities
// rank higher, so CRITICAL > HIGH > MEDIUM > LOW > INFO always holds
// regardless of declaration order.
func (s Severity) Rank() int {
	return int(s)
}

// MarshalJSON implements json.Marshaler for Severity.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler for Severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseSeverity(str)
	return nil
}

// ParseSeverity converts a string to a Severity. Unrecognized values
// map to SeverityInfo.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "crit":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium", "med":
		return SeverityMedium
	case "low":
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// Category identifies the subsystem an error pattern belongs to.
type Category int

const (
	CategoryUnknown Category = iota
	CategorySystem
	CategoryMemory
	CategoryNetwork
	CategoryDatabase
	CategorySecurity
	CategoryApplication
	CategoryHardware
	CategoryKernel
)

// Categories lists all known categories excluding CategoryUnknown.
var Categories = []Category{
	CategorySystem,
	CategoryMemory,
	CategoryNetwork,
	CategoryDatabase,
	CategorySecurity,
	CategoryApplication,
	CategoryHardware,
	CategoryKernel,
}

// String returns the string representation of a Category.
func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "SYSTEM"
	case CategoryMemory:
		return "MEMORY"
	case CategoryNetwork:
		return "NETWORK"
	case CategoryDatabase:
		return "DATABASE"
	case CategorySecurity:
		return "SECURITY"
	case CategoryApplication:
		return "APPLICATION"
	case CategoryHardware:
		return "HARDWARE"
	case CategoryKernel:
		return "KERNEL"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler for Category.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler for Category.
func (c *Category) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ParseCategory(str)
	return nil
}

// ParseCategory converts a string to a Category. Unrecognized values
// map to CategoryUnknown.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "system":
		return CategorySystem
	case "memory":
		return CategoryMemory
	case "network":
		return CategoryNetwork
	case "database":
		return CategoryDatabase
	case "security":
		return CategorySecurity
	case "application", "app":
		return CategoryApplication
	case "hardware":
		return CategoryHardware
	case "kernel":
		return CategoryKernel
	default:
		return CategoryUnknown
	}
}
