package dtos

import (
	"fmt"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/utils"
)

// SeverityCounts is the five-bucket breakdown the dashboard renders. All
// fields are always present, zero when empty.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Provenance carries the optional source control / CI metadata attached to an
// upload. Absent fields are omitted from serialized output.
type Provenance struct {
	Tag        string `json:"tag,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	PipelineID string `json:"pipeline_id,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	Project    string `json:"project,omitempty"`
	ProjectURL string `json:"project_url,omitempty" validate:"omitempty,url"`
}

func (p Provenance) IsEmpty() bool {
	return p == Provenance{}
}

// ReportDTO is the wire shape of a single stored report. Field names follow
// the dashboard contract.
type ReportDTO struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	URL           string          `json:"url"`
	Created       int64           `json:"created"`
	ReportType    *string         `json:"report_type"`
	TotalFindings int             `json:"total_findings"`
	TotalFiles    int             `json:"total_files"`
	TotalRules    int             `json:"total_rules"`
	Severity      SeverityCounts  `json:"severity"`
	Git           *Provenance     `json:"git,omitempty"`
}

// Totals is the cross-report aggregate, recomputed on every listing.
type Totals struct {
	TotalReports  int            `json:"total_reports"`
	TotalFindings int            `json:"total_findings"`
	TotalFiles    int            `json:"total_files"`
	TotalRules    int            `json:"total_rules"`
	Severity      SeverityCounts `json:"severity"`
}

type ListReportsResponse struct {
	Files  []ReportDTO `json:"files"`
	Totals Totals      `json:"totals"`
}

// UploadResponse mirrors the original upload contract of the dashboard.
type UploadResponse struct {
	URL      string      `json:"url"`
	Name     string      `json:"name"`
	StoredAs string      `json:"storedAs"`
	ID       uint        `json:"id"`
	Git      *Provenance `json:"git_metadata,omitempty"`
}

// ReportToDTO converts a stored row into its wire shape. baseURL is the
// request origin, used to build the artifact download link.
func ReportToDTO(report models.Report, baseURL string) ReportDTO {
	dto := ReportDTO{
		ID:            report.ID,
		Name:          report.Filename,
		URL:           fmt.Sprintf("%s/uploads/%s", baseURL, report.ArtifactRef),
		Created:       report.CreatedAt.Unix(),
		ReportType:    report.ReportType,
		TotalFindings: report.TotalFindings,
		TotalFiles:    report.TotalFiles,
		TotalRules:    report.TotalRules,
		Severity: SeverityCounts{
			Critical: report.SeverityCritical,
			High:     report.SeverityHigh,
			Medium:   report.SeverityMedium,
			Low:      report.SeverityLow,
			Info:     report.SeverityInfo,
		},
	}

	git := Provenance{
		Tag:        utils.SafeDereference(report.GitTag),
		Commit:     utils.SafeDereference(report.GitCommit),
		Branch:     utils.SafeDereference(report.GitBranch),
		PipelineID: utils.SafeDereference(report.GitlabPipelineID),
		JobID:      utils.SafeDereference(report.GitlabJobID),
		Project:    utils.SafeDereference(report.GitlabProject),
		ProjectURL: utils.SafeDereference(report.GitlabProjectURL),
	}
	if !git.IsEmpty() {
		dto.Git = &git
	}

	return dto
}
