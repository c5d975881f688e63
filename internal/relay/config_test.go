package relay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relayd.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
listen = "0.0.0.0:9000"

[[principal]]
id = "alice"
token = "alice-secret"

[[principal]]
id = "bob"
token = "bob-secret"

[[friendship]]
a = "alice"
b = "bob"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.Listen)
	require.Len(t, cfg.Principals, 2)
	require.Equal(t, "alice", cfg.Principals[0].ID)
	require.Equal(t, "bob-secret", cfg.Principals[1].Token)
	require.Len(t, cfg.Friendships, 1)
	require.Equal(t, Friendship{A: "alice", B: "bob"}, cfg.Friendships[0])
}

func TestLoadConfig_DefaultListen(t *testing.T) {
	path := writeConfig(t, `
[[principal]]
id = "alice"
token = "alice-secret"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7465", cfg.Listen)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing token": `
[[principal]]
id = "alice"
`,
		"missing id": `
[[principal]]
token = "secret"
`,
		"duplicate token": `
[[principal]]
id = "alice"
token = "shared"

[[principal]]
id = "bob"
token = "shared"
`,
		"bad toml": `listen = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
