package hostfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	_, err := Clean("")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = Clean("   ")
	assert.ErrorIs(t, err, ErrInvalidPath)

	got, err := Clean("a/../b/./users.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("b", "users.csv"), got)
}

func TestOpenRejectsDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)

	_, err = Stat(t.TempDir())
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(p, []byte("admin,x\n"), 0o600))

	b, err := ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "admin,x\n", string(b))

	st, err := Stat(p)
	require.NoError(t, err)
	assert.EqualValues(t, 8, st.Size())
}
