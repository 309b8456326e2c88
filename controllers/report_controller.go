// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/dtos"
	"github.com/l3montree-dev/reportreader/services"
	"github.com/l3montree-dev/reportreader/shared"
	"github.com/l3montree-dev/reportreader/utils"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// maxReportSize bounds a single upload. Static analysis reports on huge
// monorepos stay well below this.
const maxReportSize = 50 << 20 // 50 MB

type ReportController struct {
	reportService   shared.ReportService
	artifactStorage shared.ArtifactStorage
}

func NewReportController(reportService shared.ReportService, artifactStorage shared.ArtifactStorage) *ReportController {
	return &ReportController{
		reportService:   reportService,
		artifactStorage: artifactStorage,
	}
}

// provenanceFromForm reads the source control metadata from the multipart
// form. Each field falls back to the GitLab CI variable names, so a pipeline
// can forward its environment without renaming anything.
func provenanceFromForm(ctx shared.Context) dtos.Provenance {
	formValue := func(names ...string) string {
		for _, name := range names {
			if v := ctx.FormValue(name); v != "" {
				return v
			}
		}
		return ""
	}

	return dtos.Provenance{
		Tag:        formValue("git_tag", "CI_COMMIT_TAG"),
		Commit:     formValue("git_commit", "CI_COMMIT_SHA", "CI_COMMIT_SHORT_SHA"),
		Branch:     formValue("git_branch", "CI_COMMIT_REF_NAME", "CI_COMMIT_BRANCH"),
		PipelineID: formValue("gitlab_pipeline_id", "CI_PIPELINE_ID"),
		JobID:      formValue("gitlab_job_id", "CI_JOB_ID"),
		Project:    formValue("gitlab_project", "CI_PROJECT_NAME"),
		ProjectURL: formValue("gitlab_project_url", "CI_PROJECT_URL"),
	}
}

func (c *ReportController) Upload(ctx shared.Context) error {
	fileHeader, err := ctx.FormFile("report")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no report file provided").WithInternal(err)
	}
	if fileHeader.Size > maxReportSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "report file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not open report file").WithInternal(err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxReportSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read report file").WithInternal(err)
	}
	if len(content) > maxReportSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "report file too large")
	}

	provenance := provenanceFromForm(ctx)
	if err := shared.V.Struct(provenance); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid git metadata").WithInternal(err)
	}

	report, err := c.reportService.Ingest(fileHeader.Filename, content, provenance)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicateArtifact) {
			return echo.NewHTTPError(http.StatusConflict, "a report with this reference already exists").WithInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not store report").WithInternal(err)
	}

	dto := dtos.ReportToDTO(report, requestOrigin(ctx))
	return ctx.JSON(http.StatusCreated, dtos.UploadResponse{
		URL:      dto.URL,
		Name:     report.Filename,
		StoredAs: report.ArtifactRef,
		ID:       report.ID,
		Git:      dto.Git,
	})
}

func (c *ReportController) List(ctx shared.Context) error {
	reports, err := c.reportService.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list reports").WithInternal(err)
	}

	origin := requestOrigin(ctx)
	return ctx.JSON(http.StatusOK, dtos.ListReportsResponse{
		Files: utils.Map(reports, func(report models.Report) dtos.ReportDTO {
			return dtos.ReportToDTO(report, origin)
		}),
		Totals: services.CalculateTotals(reports),
	})
}

func (c *ReportController) Read(ctx shared.Context) error {
	report, err := c.reportService.Get(ctx.Param("artifactRef"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not read report").WithInternal(err)
	}

	return ctx.JSON(http.StatusOK, dtos.ReportToDTO(report, requestOrigin(ctx)))
}

func (c *ReportController) Delete(ctx shared.Context) error {
	if err := c.reportService.Delete(ctx.Param("artifactRef")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete report").WithInternal(err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// DownloadArtifact streams the raw uploaded bytes back to the client.
func (c *ReportController) DownloadArtifact(ctx shared.Context) error {
	ref := ctx.Param("artifactRef")
	report, err := c.reportService.Get(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "artifact not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not read report").WithInternal(err)
	}

	artifact, err := c.artifactStorage.Open(ref)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "artifact not found").WithInternal(err)
	}
	defer artifact.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return ctx.Stream(http.StatusOK, echo.MIMEApplicationJSON, artifact)
}

// requestOrigin rebuilds the origin the client used, so artifact links work
// behind a reverse proxy as well. echo resolves X-Forwarded-Proto for us.
func requestOrigin(ctx shared.Context) string {
	return fmt.Sprintf("%s://%s", ctx.Scheme(), ctx.Request().Host)
}
