package files

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxSize int) *Local {
	t.Helper()

	store, err := NewLocal(t.TempDir(), maxSize)
	require.NoError(t, err)
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t, 1024)

	contents := []byte("fake png bytes")
	require.NoError(t, store.Save("prod_1/preview.png", bytes.NewReader(contents)))

	f, err := store.Get("prod_1/preview.png")
	require.NoError(t, err)
	defer f.Close()

	read, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, contents, read)
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store := newTestStore(t, 1024)

	for _, name := range []string{"prod_1/malware.exe", "prod_1/readme.txt", "prod_1/noext"} {
		err := store.Save(name, strings.NewReader("contents"))
		assert.ErrorIs(t, err, ErrUnsupportedImageType, "file %s", name)
	}
}

func TestSaveRejectsOversizedImage(t *testing.T) {
	store := newTestStore(t, 16)

	err := store.Save("prod_1/big.png", strings.NewReader(strings.Repeat("x", 64)))
	require.Error(t, err)

	// The failed upload must not leave a file behind
	_, err = store.Get("prod_1/big.png")
	assert.Error(t, err)
}

func TestSaveOverwritesExisting(t *testing.T) {
	store := newTestStore(t, 1024)

	require.NoError(t, store.Save("prod_1/preview.png", strings.NewReader("first")))
	require.NoError(t, store.Save("prod_1/preview.png", strings.NewReader("second")))

	f, err := store.Get("prod_1/preview.png")
	require.NoError(t, err)
	defer f.Close()

	read, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "second", string(read))
}

func TestGetMissingImage(t *testing.T) {
	store := newTestStore(t, 1024)

	_, err := store.Get("prod_1/missing.png")
	assert.Error(t, err)
}
