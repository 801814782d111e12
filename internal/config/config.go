package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the settings both pipelines need to talk to Notion.
type Config struct {
	// Token is the Notion integration token.
	Token string
	// DatabaseID is the Notion database the pipelines read from and write to.
	DatabaseID string
	// TranscriptLanguage is the preferred caption language for transcripts.
	TranscriptLanguage string
	// ChunkSize is the maximum rune count per Notion paragraph block.
	ChunkSize int
}

const (
	defaultChunkSize  = 1900 // Notion allows 2000 chars per rich text block
	defaultLanguage   = "en"
	defaultConfigFile = "config.yaml"
)

// ResolvePath returns the config file path to load. An explicit path wins;
// otherwise the default file is used when it exists, and the empty string
// (environment-only configuration) when it does not.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

// Load reads the YAML config file at path and returns a validated Config.
// Environment variables NOTION_TOKEN and NOTION_DATABASE_ID override the
// file values. The file may be absent if both variables are set.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("notion")
	v.AutomaticEnv()
	v.SetDefault("chunk_size", defaultChunkSize)
	v.SetDefault("transcript_language", defaultLanguage)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Token:              v.GetString("token"),
		DatabaseID:         v.GetString("database_id"),
		TranscriptLanguage: v.GetString("transcript_language"),
		ChunkSize:          v.GetInt("chunk_size"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: token is not set")
	}
	if c.DatabaseID == "" {
		return fmt.Errorf("config: database_id is not set")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk_size must be positive, got %d", c.ChunkSize)
	}
	return nil
}
