// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStorage stores artifact bytes as flat files below a single directory.
// References are generated here and treated as opaque everywhere else.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStorage{dir: dir}, nil
}

// Store writes the content and returns the generated artifact reference.
// The uuid prefix makes references unique regardless of the uploaded
// filename; the sanitized original name is kept for human readability.
func (s *DiskStorage) Store(filename string, content []byte) (string, error) {
	ref := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeFilename(filename))

	if err := os.WriteFile(filepath.Join(s.dir, ref), content, 0o644); err != nil {
		return "", err
	}

	return ref, nil
}

func (s *DiskStorage) Open(ref string) (io.ReadCloser, error) {
	path, err := s.safePath(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *DiskStorage) Delete(ref string) error {
	path, err := s.safePath(ref)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		// already gone - deletion is idempotent
		return nil
	}
	return err
}

// safePath rejects references that would escape the storage directory.
func (s *DiskStorage) safePath(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) {
		return "", fmt.Errorf("invalid artifact reference: %q", ref)
	}
	return filepath.Join(s.dir, ref), nil
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "report"
	}
	return strings.ReplaceAll(name, " ", "_")
}
