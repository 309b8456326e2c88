// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ReportsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reportreader_reports_ingested_total",
	Help: "Number of ingested reports, labeled by detected format",
}, []string{"format"})

var FindingsIngested = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reportreader_findings_ingested_total",
	Help: "Total number of findings aggregated across all ingested reports",
})

var IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "reportreader_ingest_duration_seconds",
	Help:    "Duration of report ingestion (parse, aggregate, persist)",
	Buckets: prometheus.DefBuckets,
})

var ReportsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "reportreader_reports_deleted_total",
	Help: "Number of deleted reports",
})
