package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/escaperoom/internal/config"
	"github.com/jask/escaperoom/internal/database/repository"
	"github.com/jask/escaperoom/internal/service"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvConfigPath, "")
	dbPath := filepath.Join(dir, "data", "room.db")
	cfgPath := filepath.Join(dir, "config.toml")
	data := "[database]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n[log]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o600))
	return cfgPath, dbPath
}

func TestStatusAndReset(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	out := runCLI(t, "status", "--config", cfgPath)
	require.Contains(t, out, "No PIN set")

	cfg, err := loadConfig(&rootOptions{configPath: cfgPath})
	require.NoError(t, err)
	require.Equal(t, dbPath, cfg.Database.Path)

	db, err := openDB(context.Background(), cfg)
	require.NoError(t, err)
	service.NewPinStore(repository.NewPinRepo(db)).Put(context.Background(), "482")
	require.NoError(t, db.Close())

	out = runCLI(t, "status", "--config", cfgPath)
	require.Contains(t, out, "PIN set at")

	out = runCLI(t, "reset", "--config", cfgPath)
	require.Contains(t, out, "The room is unlocked")

	out = runCLI(t, "status", "--config", cfgPath)
	require.Contains(t, out, "No PIN set")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvConfigPath, "")
	target := filepath.Join(dir, "out", "config.toml")

	out := runCLI(t, "config", "init", "--config", target)
	require.Contains(t, out, target)

	cfg, err := config.Load(target)
	require.NoError(t, err)
	require.Equal(t, "forget", cfg.Game.ResetPolicy)
}

func TestLogLevelOverrideIsValidated(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	_, err := loadConfig(&rootOptions{configPath: cfgPath, logLevel: "chatty"})
	require.Error(t, err)

	cfg, err := loadConfig(&rootOptions{configPath: cfgPath, logLevel: "debug"})
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
}
