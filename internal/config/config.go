package config

import (
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/joho/godotenv"
)

// Config holds the relay's runtime settings, fed from the environment
// (with an optional .env file for development).
type Config struct {
	ServerAddr     string `env:"RELAY_SERVER_ADDR"`
	LogLevel       string `env:"RELAY_LOG_LEVEL"`
	AllowedOrigins string `env:"RELAY_ALLOWED_ORIGINS"` // comma-separated; empty allows all
	STUNURLs       string `env:"RELAY_STUN_URLS"`       // comma-separated
	TURNURL        string `env:"RELAY_TURN_URL"`
	TURNUsername   string `env:"RELAY_TURN_USERNAME"`
	TURNCredential string `env:"RELAY_TURN_CREDENTIAL"`
}

// ICEServer is one entry of the list served to clients, shaped the way
// RTCPeerConnection wants its iceServers option.
type ICEServer struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := config.New().AddFeeder(feeder.Env{}).AddStruct(cfg).Feed(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.STUNURLs == "" {
		c.STUNURLs = "stun:stun.l.google.com:19302"
	}
}

// OriginAllowed reports whether a websocket upgrade from origin may
// proceed. An empty allowlist admits everything, which matches how the
// platform runs behind its own ingress.
func (c *Config) OriginAllowed(origin string) bool {
	if c.AllowedOrigins == "" {
		return true
	}
	for _, allowed := range strings.Split(c.AllowedOrigins, ",") {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}

// ICEServers assembles the STUN/TURN list clients use for NAT traversal.
// The relay only hands out the configuration; the servers themselves are
// external infrastructure.
func (c *Config) ICEServers() []ICEServer {
	servers := []ICEServer{{URLs: splitList(c.STUNURLs)}}
	if c.TURNURL != "" {
		servers = append(servers, ICEServer{
			URLs:       []string{c.TURNURL},
			Username:   c.TURNUsername,
			Credential: c.TURNCredential,
		})
	}
	return servers
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
