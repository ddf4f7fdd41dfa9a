package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

const sampleHeader = `# newsroom configuration
# Every key can be overridden with a NEWSROOM_<KEY> environment variable
# (for example NEWSROOM_DB_PATH) or a command-line flag.
`

// WriteSample writes cfg as a commented YAML file. An existing file is
// only replaced when force is set.
func WriteSample(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := renameio.WriteFile(path, append([]byte(sampleHeader), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// YAML renders the configuration with durations in their string form.
func (c *Config) YAML() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		switch doc.Content[i].Value {
		case "token_ttl":
			doc.Content[i+1].SetString(c.TokenTTL.String())
		case "rate_window":
			doc.Content[i+1].SetString(c.RateWindow.String())
		}
	}
	return yaml.Marshal(&doc)
}
