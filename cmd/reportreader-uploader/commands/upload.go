// Copyright (C) 2024 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// provenanceFields maps the upload form fields to their flag name and the
// GitLab CI variables that carry the same information. An explicit flag wins,
// then the first non-empty environment variable.
var provenanceFields = map[string]struct {
	flag string
	env  []string
}{
	"git_tag":            {"tag", []string{"CI_COMMIT_TAG"}},
	"git_commit":         {"commit", []string{"CI_COMMIT_SHA", "CI_COMMIT_SHORT_SHA"}},
	"git_branch":         {"branch", []string{"CI_COMMIT_REF_NAME", "CI_COMMIT_BRANCH"}},
	"gitlab_pipeline_id": {"pipelineId", []string{"CI_PIPELINE_ID"}},
	"gitlab_job_id":      {"jobId", []string{"CI_JOB_ID"}},
	"gitlab_project":     {"project", []string{"CI_PROJECT_NAME"}},
	"gitlab_project_url": {"projectUrl", []string{"CI_PROJECT_URL"}},
}

func collectMetadata(cmd *cobra.Command) map[string]string {
	metadata := make(map[string]string)
	for field, source := range provenanceFields {
		if value, err := cmd.Flags().GetString(source.flag); err == nil && value != "" {
			metadata[field] = value
			continue
		}
		for _, envName := range source.env {
			if value := os.Getenv(envName); value != "" {
				metadata[field] = value
				break
			}
		}
	}
	return metadata
}

func buildUploadRequest(ctx context.Context, apiURL, reportPath string, metadata map[string]string) (*http.Request, error) {
	file, err := os.Open(reportPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not open report file")
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("report", filepath.Base(reportPath))
	if err != nil {
		return nil, errors.Wrap(err, "could not create multipart body")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, errors.Wrap(err, "could not read report file")
	}

	for field, value := range metadata {
		if err := writer.WriteField(field, value); err != nil {
			return nil, errors.Wrap(err, "could not write form field")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "could not finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/reports/", body)
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

func uploadReport(cmd *cobra.Command, reportPath string) error {
	apiURL, err := cmd.Flags().GetString("apiUrl")
	if err != nil {
		return err
	}

	metadata := collectMetadata(cmd)

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	req, err := buildUploadRequest(ctx, apiURL, reportPath, metadata)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not reach reportreader instance")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, respBody)
	}

	var uploaded struct {
		URL      string `json:"url"`
		StoredAs string `json:"storedAs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return errors.Wrap(err, "could not decode upload response")
	}

	slog.Info("report uploaded", "file", reportPath, "storedAs", uploaded.StoredAs, "url", uploaded.URL)
	return nil
}

func NewUploadCommand() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload <report-file>...",
		Short: "Upload one or more report files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, reportPath := range args {
				if err := uploadReport(cmd, reportPath); err != nil {
					return err
				}
			}
			return nil
		},
	}

	uploadCmd.Flags().String("tag", "", "Git tag the report was produced from")
	uploadCmd.Flags().String("commit", "", "Git commit sha")
	uploadCmd.Flags().String("branch", "", "Git branch")
	uploadCmd.Flags().String("pipelineId", "", "GitLab pipeline id")
	uploadCmd.Flags().String("jobId", "", "GitLab job id")
	uploadCmd.Flags().String("project", "", "GitLab project name")
	uploadCmd.Flags().String("projectUrl", "", "GitLab project url")

	return uploadCmd
}
