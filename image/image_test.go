package image_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-uvm/uvm/image"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.um")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoad_DecodesBigEndianWords(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], 0x01020304)
	binary.BigEndian.PutUint32(data[4:8], 0xAABBCCDD)
	path := writeTempFile(t, data)

	words, err := image.Load(path)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, uint32(0x01020304), words[0])
	assert.Equal(t, uint32(0xAABBCCDD), words[1])
}

func TestLoad_InvalidImageSizeNotMultipleOf4(t *testing.T) {
	path := writeTempFile(t, []byte{1, 2, 3, 4, 5})

	_, err := image.Load(path)
	require.Error(t, err)
	var sizeErr *image.ErrInvalidImageSize
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, int64(5), sizeErr.Size)
}

func TestLoad_InvalidImageSizeEmpty(t *testing.T) {
	path := writeTempFile(t, []byte{})

	_, err := image.Load(path)
	require.Error(t, err)
	var sizeErr *image.ErrInvalidImageSize
	require.ErrorAs(t, err, &sizeErr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := image.Load(filepath.Join(t.TempDir(), "missing.um"))
	require.Error(t, err)
}
