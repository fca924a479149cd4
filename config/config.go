package config

import (
	"docgen/doc"
	"docgen/log"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ConfigFileName = "config.json"

	defaultLatencyMs     = 1500
	defaultMarkdownStyle = "auto"
)

// MarkdownStyles are the accepted values of Config.MarkdownStyle.
var MarkdownStyles = []string{"auto", "dark", "light", "notty"}

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".docgen"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultLanguage is the language selected when the UI starts.
	DefaultLanguage doc.Language `json:"default_language"`
	// DefaultDocType is the documentation type selected when the UI starts.
	DefaultDocType doc.DocType `json:"default_doc_type"`
	// AnalysisLatencyMs is the simulated analysis delay in milliseconds. Zero disables it.
	AnalysisLatencyMs int `json:"analysis_latency_ms"`
	// DownloadDir is where saved documents are written.
	DownloadDir string `json:"download_dir"`
	// Editor is the command used to edit the paste buffer. Empty falls back to $VISUAL, $EDITOR, then vi.
	Editor string `json:"editor,omitempty"`
	// MarkdownStyle is the glamour style of the preview: auto, dark, light or notty.
	MarkdownStyle string `json:"markdown_style"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultLanguage:   doc.LanguageJavaScript,
		DefaultDocType:    doc.DocTypeAPI,
		AnalysisLatencyMs: defaultLatencyMs,
		DownloadDir:       ".",
		MarkdownStyle:     defaultMarkdownStyle,
	}
}

// AnalysisLatency returns the configured delay, never negative.
func (c *Config) AnalysisLatency() time.Duration {
	if c.AnalysisLatencyMs <= 0 {
		return 0
	}
	return time.Duration(c.AnalysisLatencyMs) * time.Millisecond
}

// EditorCommand returns the editor command split into program and arguments.
func (c *Config) EditorCommand() []string {
	for _, candidate := range []string{c.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Unmarshal over the defaults so fields missing from older files keep their default
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	if !validMarkdownStyle(config.MarkdownStyle) {
		log.WarningLog.Printf("unknown markdown style %q, using %q", config.MarkdownStyle, defaultMarkdownStyle)
		config.MarkdownStyle = defaultMarkdownStyle
	}
	if config.DownloadDir == "" {
		config.DownloadDir = "."
	}

	return config
}

func validMarkdownStyle(style string) bool {
	for _, s := range MarkdownStyles {
		if s == style {
			return true
		}
	}
	return false
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
