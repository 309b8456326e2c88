// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/shared"
	"gorm.io/gorm"
)

// InMemoryReportRepository backs the store with a transient in-process map.
// It carries the exact semantics of the gorm repository (unique artifact
// refs, strictly increasing ids, newest-first listing) and serves both the
// database-less deployment variant and the unit tests.
type InMemoryReportRepository struct {
	mu      sync.Mutex
	nextID  uint
	reports map[string]models.Report
}

func NewInMemoryReportRepository() *InMemoryReportRepository {
	return &InMemoryReportRepository{
		reports: make(map[string]models.Report),
	}
}

func (r *InMemoryReportRepository) Create(_ *gorm.DB, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ArtifactRef]; exists {
		return shared.ErrDuplicateArtifact
	}

	r.nextID++
	report.ID = r.nextID
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	r.reports[report.ArtifactRef] = *report
	return nil
}

func (r *InMemoryReportRepository) All() ([]models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reports := make([]models.Report, 0, len(r.reports))
	for _, report := range r.reports {
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})

	return reports, nil
}

func (r *InMemoryReportRepository) FindByArtifactRef(ref string) (models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, exists := r.reports[ref]
	if !exists {
		return models.Report{}, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *InMemoryReportRepository) DeleteByArtifactRef(ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[ref]; !exists {
		return false, nil
	}
	delete(r.reports, ref)
	return true, nil
}
