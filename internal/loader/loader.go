// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyFile is returned for ROM files without content.
var ErrEmptyFile = errors.New("empty ROM file")

// Extensions lists the file extensions commonly used for CHIP-8 ROMs.
var Extensions = []string{".ch8", ".rom", ".c8"}

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a ROM file. Files that do not fit into the program space of the
// machine are refused before they are read.
func (l *Loader) Load(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(Extensions, ext) {
		l.logger.Warn("Unexpected ROM file extension",
			log.String("file", path),
			log.String("extension", ext),
		)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info of %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return l.LoadFromReader(file, info.Size())
}

// LoadFromReader reads a ROM of the given size from the reader.
func (l *Loader) LoadFromReader(reader io.Reader, size int64) ([]byte, error) {
	switch {
	case size == 0:
		return nil, ErrEmptyFile
	case size > machine.MaxROMSize:
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", machine.ErrROMTooLarge, size, machine.MaxROMSize)
	}

	rom := make([]byte, size)
	if _, err := io.ReadFull(reader, rom); err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	l.logger.Debug("Loaded ROM", log.Int("size", len(rom)))
	return rom, nil
}
