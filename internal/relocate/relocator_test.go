package relocate

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, dir := range []string{"input/sub", "finished", "error"} {
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
	}
	require.NoError(t, afero.WriteFile(fsys, "input/sub/a.pdf", []byte("a"), 0o644))
	return fsys
}

func TestMove(t *testing.T) {
	fsys := setup(t)

	res := Move(fsys, "input/sub/a.pdf", "finished")
	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, "finished/a.pdf", res.Destination)

	gone, err := afero.Exists(fsys, "input/sub/a.pdf")
	require.NoError(t, err)
	assert.False(t, gone)

	data, err := afero.ReadFile(fsys, "finished/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestMove_DestinationExists(t *testing.T) {
	fsys := setup(t)
	require.NoError(t, afero.WriteFile(fsys, "error/a.pdf", []byte("older"), 0o644))

	res := Move(fsys, "input/sub/a.pdf", "error")
	assert.Equal(t, FailedExists, res.Outcome)
	assert.Error(t, res.Err)
	assert.False(t, res.OK())

	stillThere, err := afero.Exists(fsys, "input/sub/a.pdf")
	require.NoError(t, err)
	assert.True(t, stillThere)

	data, err := afero.ReadFile(fsys, "error/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "older", string(data))
}

func TestMove_Missing(t *testing.T) {
	fsys := setup(t)

	t.Run("source", func(t *testing.T) {
		res := Move(fsys, "input/nope.pdf", "finished")
		assert.Equal(t, FailedMissing, res.Outcome)
	})

	t.Run("destination directory", func(t *testing.T) {
		res := Move(fsys, "input/sub/a.pdf", "archive")
		assert.Equal(t, FailedMissing, res.Outcome)
	})

	t.Run("destination is a file", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fsys, "plain", []byte("x"), 0o644))
		res := Move(fsys, "input/sub/a.pdf", "plain")
		assert.Equal(t, FailedMissing, res.Outcome)
	})
}

func TestMove_Permission(t *testing.T) {
	fsys := afero.NewReadOnlyFs(setup(t))

	res := Move(fsys, "input/sub/a.pdf", "finished")
	assert.Equal(t, FailedPermission, res.Outcome)
	assert.Error(t, res.Err)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "moved", Moved.String())
	assert.Equal(t, "failed-exists", FailedExists.String())
	assert.Equal(t, "failed-permission", FailedPermission.String())
	assert.Equal(t, "failed-missing", FailedMissing.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
