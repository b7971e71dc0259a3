package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/credcheck/internal/auth"
	"github.com/hnrobert/credcheck/internal/credstore"
)

func noEnv(string) string { return "" }

var fastFlags = []string{"-m", "64", "-t", "1", "-p", "1"}

func TestRun_PrintsVerifiableHash(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(fastFlags, strings.NewReader("adminpass\n"), &out, &errOut, noEnv)
	require.Equal(t, 0, code, errOut.String())

	hash := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$"), hash)
	assert.True(t, auth.Verify("adminpass", hash))
	assert.False(t, auth.Verify("wrongpass", hash))
}

func TestRun_CSVRowRoundTrips(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(append([]string{"-user", "admin"}, fastFlags...), strings.NewReader("adminpass"), &out, &errOut, noEnv)
	require.Equal(t, 0, code, errOut.String())

	p := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(p, out.Bytes(), 0o600))

	hash, found, err := credstore.HashFor(credstore.NewCSVFile(p), "admin")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, auth.Verify("adminpass", hash))
}

func TestRun_ConfigParams(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "credcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("hash:\n  memory: 128\n  time: 2\n  threads: 1\n"), 0o600))

	var out bytes.Buffer
	code := run([]string{"-config", cfgPath}, strings.NewReader("pw\n"), &out, &bytes.Buffer{}, noEnv)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out.String(), "$argon2id$v=19$m=128,t=2,p=1$"), out.String())
}

func TestRun_Errors(t *testing.T) {
	var errOut bytes.Buffer
	assert.Equal(t, 1, run(fastFlags, strings.NewReader("\n"), &bytes.Buffer{}, &errOut, noEnv))
	assert.Contains(t, errOut.String(), "empty password")

	assert.Equal(t, 2, run([]string{"-p", "300"}, strings.NewReader("pw\n"), &bytes.Buffer{}, &bytes.Buffer{}, noEnv))
	assert.Equal(t, 1, run([]string{"-m", "4", "-t", "1", "-p", "1"}, strings.NewReader("pw\n"), &bytes.Buffer{}, &bytes.Buffer{}, noEnv))
	assert.Equal(t, 2, run([]string{"-config", "/nonexistent/credcheck.yaml"}, strings.NewReader("pw\n"), &bytes.Buffer{}, &bytes.Buffer{}, noEnv))
}
