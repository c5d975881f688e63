package relay

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the relayd TOML configuration.
//
// Example:
//
//	listen = "127.0.0.1:7465"
//
//	[[principal]]
//	id = "alice"
//	token = "alice-secret"
//
//	[[principal]]
//	id = "bob"
//	token = "bob-secret"
//
//	[[friendship]]
//	a = "alice"
//	b = "bob"
type Config struct {
	Listen      string       `toml:"listen"`
	Principals  []Principal  `toml:"principal"`
	Friendships []Friendship `toml:"friendship"`
}

// Principal provisions one account: an opaque id and its connection token.
type Principal struct {
	ID    string `toml:"id"`
	Token string `toml:"token"`
}

// Friendship provisions an established mutual-trust relation.
type Friendship struct {
	A string `toml:"a"`
	B string `toml:"b"`
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = "127.0.0.1:7465"
	}
	seen := make(map[string]bool)
	for _, p := range cfg.Principals {
		if p.ID == "" || p.Token == "" {
			return nil, fmt.Errorf("config %s: principal needs both id and token", path)
		}
		if seen[p.Token] {
			return nil, fmt.Errorf("config %s: duplicate token", path)
		}
		seen[p.Token] = true
	}
	return &cfg, nil
}
