package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaemonMain_FailedStartReleasesPIDFile(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte("not json"), 0o644))
	pidPath := filepath.Join(dir, "craftchain.pid")

	configPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
catalog:
  source: file
  path: %q
database:
  type: sqlite
  path: %q
server:
  pid_file: %q
metrics:
  enabled: false
logging:
  level: error
  output: stderr
`, datasetPath, filepath.Join(dir, "craftchain.db"), pidPath)
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))

	code := daemonMain([]string{"--config", configPath})

	assert.Equal(t, 1, code)
	_, err := os.Stat(pidPath)
	assert.True(t, os.IsNotExist(err), "pid file must be removed on an error exit")
}

func TestDaemonMain_MissingConfigFile(t *testing.T) {
	code := daemonMain([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Equal(t, 1, code)
}

func TestDaemonMain_UnknownFlag(t *testing.T) {
	assert.Equal(t, 2, daemonMain([]string{"--bogus"}))
}
