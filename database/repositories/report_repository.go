// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package repositories

import (
	"github.com/l3montree-dev/reportreader/database"
	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/shared"
	"gorm.io/gorm"
)

type reportRepository struct {
	*GormRepository[uint, models.Report]
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *reportRepository {
	return &reportRepository{
		db:             db,
		GormRepository: newGormRepository[uint, models.Report](db),
	}
}

// Create inserts a new report row. The unique index on artifact_ref
// serializes racing inserts of the same reference - exactly one wins, the
// others observe ErrDuplicateArtifact.
func (r *reportRepository) Create(tx *gorm.DB, report *models.Report) error {
	err := r.GetDB(tx).Create(report).Error
	if err != nil && database.IsDuplicateKeyError(err) {
		return shared.ErrDuplicateArtifact
	}
	return err
}

// All returns every stored report, most recent first. Ties within one clock
// tick resolve by id, so insertion order is preserved.
func (r *reportRepository) All() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Order("created_at DESC, id DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindByArtifactRef(ref string) (models.Report, error) {
	var report models.Report
	err := r.db.Where("artifact_ref = ?", ref).First(&report).Error
	return report, err
}

// DeleteByArtifactRef removes the row if it exists and reports whether it
// did. Deleting an absent ref is not an error.
func (r *reportRepository) DeleteByArtifactRef(ref string) (bool, error) {
	result := r.db.Where("artifact_ref = ?", ref).Delete(&models.Report{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
