package media

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(Params{
		Config: config.Config{MediaDir: t.TempDir()},
		Log:    zap.NewNop(),
	})
	require.NoError(t, err)
	return store
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := newStore(t)

	ref, err := store.Save(bytes.NewReader([]byte("jpeg bytes")), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	rc, err := store.Open(ref)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store := newStore(t)

	_, err := store.Save(bytes.NewReader([]byte("gif")), "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	store := newStore(t)

	_, err := store.Save(bytes.NewReader(make([]byte, MaxImageSize+1)), "image/png")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestOpenRejectsPathTraversal(t *testing.T) {
	store := newStore(t)

	_, err := store.Open("../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveMissingRefIsNoOp(t *testing.T) {
	store := newStore(t)

	assert.NoError(t, store.Remove("does-not-exist.jpg"))
}
