package config

// Config holds runtime settings for the board CLI.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - SessionFile: path of the JSON file the session is persisted to.
//     Empty means "epitrello/session.json" under the user config dir.
type Config struct {
	ServerURL   string
	SessionFile string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.SessionFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
