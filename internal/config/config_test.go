package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("BIMO_HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	setupHome(t)

	require.NoError(t, Load())
	assert.Equal(t, "info", Get(KeyLogLevel))
	assert.Equal(t, "console", Get(KeyLogFormat))
	assert.Empty(t, Get(KeyProjectsDir))
}

func TestSetThenLoad(t *testing.T) {
	home := setupHome(t)
	projects := filepath.Join(home, "projects")

	require.NoError(t, Load())
	require.NoError(t, Set(KeyProjectsDir, projects))

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), projects)

	viper.Reset()
	require.NoError(t, Load())
	dir, err := ProjectsDir()
	require.NoError(t, err)
	assert.Equal(t, projects, dir)
}

func TestEnvOverridesFile(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("log:\n  level: warn\n"), 0644))
	t.Setenv("BIMO_LOG_LEVEL", "debug")

	require.NoError(t, Load())
	assert.Equal(t, "debug", Get(KeyLogLevel))
}

func TestLoad_MalformedFile(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("log: [unclosed\n"), 0644))

	assert.Error(t, Load())
}

func TestProjectsDir_FallsBackToWorkingDir(t *testing.T) {
	setupHome(t)
	require.NoError(t, Load())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	dir, err := ProjectsDir()
	require.NoError(t, err)
	assert.Equal(t, cwd, dir)
}
