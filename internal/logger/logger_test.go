package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(Options{Root: dir, Level: "debug"})
	require.NoError(t, err)
	log.Debugw("hello", "k", "v")
	_ = log.Sync()

	name := filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+".log")
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Root: t.TempDir(), Level: "loud"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	dir := t.TempDir()
	log, err := New(Options{Root: dir, Level: "info"})
	require.NoError(t, err)

	log.Debugw("quiet")
	require.NoError(t, SetLevel("debug"))
	log.Debugw("loud")
	_ = log.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"msg":"quiet"`)
	assert.Contains(t, string(b), `"msg":"loud"`)

	assert.Error(t, SetLevel("loud"))
}
