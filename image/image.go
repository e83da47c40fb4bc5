// Package image loads a program image — a flat binary file of
// big-endian 32-bit words — into the word slice the Execution Engine
// installs as segment 0. Image loading sits outside the VM's core: it
// is a file-to-words conversion that happens before any Engine exists.
package image

import (
	"encoding/binary"
	"fmt"
	"os"
)

// ErrInvalidImageSize is returned when a file's length is not a
// positive multiple of 4, before any VM is constructed.
type ErrInvalidImageSize struct {
	Path string
	Size int64
}

func (e *ErrInvalidImageSize) Error() string {
	return fmt.Sprintf("invalid image size: %s is %d bytes, want a positive multiple of 4", e.Path, e.Size)
}

// Load reads the file at path and decodes it into a sequence of
// big-endian 32-bit instruction words.
func Load(path string) ([]uint32, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is an explicit CLI argument
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	if len(data) == 0 || len(data)%4 != 0 {
		return nil, &ErrInvalidImageSize{Path: path, Size: int64(len(data))}
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*4 : i*4+4])
	}
	return words, nil
}
