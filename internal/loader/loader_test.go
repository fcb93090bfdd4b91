package loader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0x12, 0x02}
		tmpFile := createTempFile(t, "test.ch8", data)

		rom, err := New(log.NewTestLogger(t)).Load(tmpFile)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(data, rom))
	})

	t.Run("load file with unexpected extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.bin", []byte{0x12, 0x00})

		rom, err := New(log.NewTestLogger(t)).Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, 2)
	})

	t.Run("load maximum size", func(t *testing.T) {
		tmpFile := createTempFile(t, "big.ch8", make([]byte, machine.MaxROMSize))

		rom, err := New(log.NewTestLogger(t)).Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, rom, machine.MaxROMSize)
	})

	t.Run("error on too large file", func(t *testing.T) {
		tmpFile := createTempFile(t, "huge.ch8", make([]byte, machine.MaxROMSize+1))

		_, err := New(log.NewTestLogger(t)).Load(tmpFile)
		assert.True(t, errors.Is(err, machine.ErrROMTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		_, err := New(log.NewTestLogger(t)).Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyFile))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New(log.NewTestLogger(t)).Load("/nonexistent/file.ch8")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on directory", func(t *testing.T) {
		_, err := New(log.NewTestLogger(t)).Load(t.TempDir())
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestLoadFromReader(t *testing.T) {
	l := New(log.NewTestLogger(t))

	rom, err := l.LoadFromReader(bytes.NewReader([]byte{1, 2, 3}), 3)
	assert.NoError(t, err)
	assert.Len(t, rom, 3)

	_, err = l.LoadFromReader(bytes.NewReader([]byte{1, 2}), 3)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
