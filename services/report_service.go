// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/dtos"
	"github.com/l3montree-dev/reportreader/monitoring"
	"github.com/l3montree-dev/reportreader/normalize"
	"github.com/l3montree-dev/reportreader/shared"
	"github.com/l3montree-dev/reportreader/utils"
	"gorm.io/gorm"
)

type reportService struct {
	reportRepository shared.ReportRepository
	artifactStorage  shared.ArtifactStorage
	utils.FireAndForgetSynchronizer
}

func NewReportService(reportRepository shared.ReportRepository, artifactStorage shared.ArtifactStorage, synchronizer utils.FireAndForgetSynchronizer) *reportService {
	return &reportService{
		reportRepository:          reportRepository,
		artifactStorage:           artifactStorage,
		FireAndForgetSynchronizer: synchronizer,
	}
}

// Ingest stores the raw bytes, derives the summary metadata and inserts the
// report row. An undecodable or unrecognized document is not an error - it
// persists with a null format and zero counts.
func (s *reportService) Ingest(filename string, content []byte, provenance dtos.Provenance) (models.Report, error) {
	start := time.Now()
	defer func() {
		monitoring.IngestDuration.Observe(time.Since(start).Seconds())
	}()

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		slog.Warn("could not decode report document, storing with zero counts", "filename", filename, "err", err)
		doc = nil
	}

	format, metrics := normalize.SummarizeDocument(doc)

	ref, err := s.artifactStorage.Store(filename, content)
	if err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		Filename:    filename,
		ArtifactRef: ref,
		ReportType:  utils.EmptyThenNil(string(format)),

		TotalFindings: metrics.TotalFindings,
		TotalFiles:    metrics.TotalFiles,
		TotalRules:    metrics.TotalRules,

		SeverityCritical: metrics.SeverityCritical,
		SeverityHigh:     metrics.SeverityHigh,
		SeverityMedium:   metrics.SeverityMedium,
		SeverityLow:      metrics.SeverityLow,
		SeverityInfo:     metrics.SeverityInfo,

		GitTag:           utils.EmptyThenNil(provenance.Tag),
		GitCommit:        utils.EmptyThenNil(provenance.Commit),
		GitBranch:        utils.EmptyThenNil(provenance.Branch),
		GitlabPipelineID: utils.EmptyThenNil(provenance.PipelineID),
		GitlabJobID:      utils.EmptyThenNil(provenance.JobID),
		GitlabProject:    utils.EmptyThenNil(provenance.Project),
		GitlabProjectURL: utils.EmptyThenNil(provenance.ProjectURL),
	}

	if err := s.reportRepository.Create(nil, &report); err != nil {
		// don't leave an orphaned artifact behind
		if deleteErr := s.artifactStorage.Delete(ref); deleteErr != nil {
			monitoring.Alert("could not clean up artifact after failed report insert", deleteErr)
		}
		return models.Report{}, err
	}

	monitoring.ReportsIngested.WithLabelValues(formatLabel(format)).Inc()
	monitoring.FindingsIngested.Add(float64(metrics.TotalFindings))

	return report, nil
}

func (s *reportService) List() ([]models.Report, error) {
	return s.reportRepository.All()
}

func (s *reportService) Get(artifactRef string) (models.Report, error) {
	return s.reportRepository.FindByArtifactRef(artifactRef)
}

// Delete removes the row first, then the backing artifact. Artifact cleanup
// happens off the request path - a failure there leaves a stray file but
// never a dangling row.
func (s *reportService) Delete(artifactRef string) error {
	deleted, err := s.reportRepository.DeleteByArtifactRef(artifactRef)
	if err != nil {
		return err
	}
	if !deleted {
		return gorm.ErrRecordNotFound
	}

	monitoring.ReportsDeleted.Inc()

	s.FireAndForget(func() {
		if err := s.artifactStorage.Delete(artifactRef); err != nil {
			monitoring.Alert("could not delete artifact after removing report row", err)
		}
	})

	return nil
}

func formatLabel(format normalize.ReportFormat) string {
	if format == normalize.FormatUnknown {
		return "unknown"
	}
	return string(format)
}
