// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package models

import "time"

// Report is the persisted summary of one uploaded static analysis document.
// Rows are created exactly once at upload time and never mutated afterwards;
// deletion also removes the backing artifact. TotalFindings always equals the
// sum of the five severity counters.
type Report struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	Filename    string `json:"filename" gorm:"not null;type:text;"`
	ArtifactRef string `json:"artifactRef" gorm:"uniqueIndex;not null;type:text;"`

	// nil when the document matched no known format
	ReportType *string `json:"reportType"`

	TotalFindings int `json:"totalFindings" gorm:"not null;default:0;"`
	TotalFiles    int `json:"totalFiles" gorm:"not null;default:0;"`
	TotalRules    int `json:"totalRules" gorm:"not null;default:0;"`

	SeverityCritical int `json:"severityCritical" gorm:"not null;default:0;"`
	SeverityHigh     int `json:"severityHigh" gorm:"not null;default:0;"`
	SeverityMedium   int `json:"severityMedium" gorm:"not null;default:0;"`
	SeverityLow      int `json:"severityLow" gorm:"not null;default:0;"`
	SeverityInfo     int `json:"severityInfo" gorm:"not null;default:0;"`

	GitTag           *string `json:"gitTag,omitempty"`
	GitCommit        *string `json:"gitCommit,omitempty"`
	GitBranch        *string `json:"gitBranch,omitempty"`
	GitlabPipelineID *string `json:"gitlabPipelineId,omitempty"`
	GitlabJobID      *string `json:"gitlabJobId,omitempty"`
	GitlabProject    *string `json:"gitlabProject,omitempty"`
	GitlabProjectURL *string `json:"gitlabProjectUrl,omitempty"`
}

func (r Report) TableName() string {
	return "reports"
}
