// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package shared

import (
	"errors"
	"io"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/dtos"
)

// ErrDuplicateArtifact is returned by ReportRepository.Create when the
// artifact reference is already mapped to a stored report. The caller decides
// whether to retry with a fresh reference - the repository never renames.
var ErrDuplicateArtifact = errors.New("artifact reference already exists")

// ReportRepository owns the lifecycle of report rows. Each artifact reference
// maps to at most one row, ids are strictly increasing and rows are never
// updated after insert.
type ReportRepository interface {
	Create(tx DB, report *models.Report) error
	All() ([]models.Report, error)
	FindByArtifactRef(ref string) (models.Report, error)
	DeleteByArtifactRef(ref string) (bool, error)
}

// ArtifactStorage persists the raw uploaded bytes. The reference is opaque to
// everything except the storage implementation itself.
type ArtifactStorage interface {
	Store(filename string, content []byte) (string, error)
	Open(ref string) (io.ReadCloser, error)
	Delete(ref string) error
}

type ReportService interface {
	Ingest(filename string, content []byte, provenance dtos.Provenance) (models.Report, error)
	List() ([]models.Report, error)
	Get(artifactRef string) (models.Report, error)
	Delete(artifactRef string) error
}
