package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func loadWithEnv(t *testing.T, env map[string]string) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	for k, v := range env {
		t.Setenv(k, v)
	}
	Load()
}

func TestLoadDefaults(t *testing.T) {
	loadWithEnv(t, nil)

	require.Equal(t, "http://localhost:3000", Get("server_url", ""))
	require.Equal(t, "/ws/notifications", Get("socket_path", ""))
	require.Equal(t, 20, GetInt("poll_interval", 0))
	require.Equal(t, 5, GetInt("grace_period", 0))
	require.Equal(t, 5000, GetInt("toast_duration", 0))
	require.True(t, GetBool("history_enabled", false))
}

func TestEnvOverrideWins(t *testing.T) {
	loadWithEnv(t, map[string]string{
		"CARTAS_TRAY_SERVER_URL":    "https://cartas.example.com",
		"CARTAS_TRAY_POLL_INTERVAL": "30",
	})

	require.Equal(t, "https://cartas.example.com", Get("server_url", ""))
	require.Equal(t, 30, GetInt("poll_interval", 0))
}

func TestPollIntervalOutOfRangeFallsBack(t *testing.T) {
	loadWithEnv(t, map[string]string{"CARTAS_TRAY_POLL_INTERVAL": "5"})

	require.Equal(t, 20, GetInt("poll_interval", 0))
}

func TestInvalidServerURLFallsBack(t *testing.T) {
	loadWithEnv(t, map[string]string{"CARTAS_TRAY_SERVER_URL": "not a url"})

	require.Equal(t, "http://localhost:3000", Get("server_url", ""))
}

func TestLoadFromTOMLFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	content := "server_url = \"https://api.cartas.dev\"\ntoast_duration = 3000\nhistory_enabled = false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loadWithEnv(t, map[string]string{"CARTAS_TRAY_CONFIG_PATH": path})

	require.Equal(t, "https://api.cartas.dev", Get("server_url", ""))
	require.Equal(t, 3000*time.Millisecond, GetMilliseconds("toast_duration", 0))
	require.False(t, GetBool("history_enabled", true))
}

func TestGetSecondsDefaults(t *testing.T) {
	loadWithEnv(t, nil)

	require.Equal(t, 20*time.Second, GetSeconds("poll_interval", time.Second))
	require.Equal(t, time.Second, GetSeconds("missing_key", time.Second))
}

func TestCreatesSampleConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	Load()

	_, err := os.Stat(filepath.Join(tmp, "cartas-tray", "config.toml"))
	require.NoError(t, err)
}
