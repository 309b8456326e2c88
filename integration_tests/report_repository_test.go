package integration_tests

import (
	"testing"
	"time"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/database/repositories"
	"github.com/l3montree-dev/reportreader/shared"
	"github.com/l3montree-dev/reportreader/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReportRepositoryAgainstPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container based test in short mode")
	}

	db, terminate := initDatabaseContainer()
	defer terminate()

	repository := repositories.NewReportRepository(db)

	t.Run("insert and read back a report row", func(t *testing.T) {
		report := models.Report{
			Filename:      "gosec.sarif",
			ArtifactRef:   "ref-insert",
			ReportType:    utils.Ptr("SARIF"),
			TotalFindings: 3,
			SeverityHigh:  2,
			SeverityLow:   1,
			GitBranch:     utils.Ptr("main"),
		}
		require.NoError(t, repository.Create(nil, &report))
		assert.NotZero(t, report.ID)

		stored, err := repository.FindByArtifactRef("ref-insert")
		require.NoError(t, err)
		assert.Equal(t, "gosec.sarif", stored.Filename)
		assert.Equal(t, 3, stored.TotalFindings)
		require.NotNil(t, stored.GitBranch)
		assert.Equal(t, "main", *stored.GitBranch)
	})

	t.Run("duplicate artifact refs hit the unique index", func(t *testing.T) {
		first := models.Report{Filename: "a.json", ArtifactRef: "ref-dup"}
		require.NoError(t, repository.Create(nil, &first))

		second := models.Report{Filename: "b.json", ArtifactRef: "ref-dup"}
		err := repository.Create(nil, &second)
		assert.ErrorIs(t, err, shared.ErrDuplicateArtifact)

		stored, err := repository.FindByArtifactRef("ref-dup")
		require.NoError(t, err)
		assert.Equal(t, "a.json", stored.Filename)
	})

	t.Run("lists newest first with id as tie break", func(t *testing.T) {
		now := time.Now()
		older := models.Report{Filename: "older.json", ArtifactRef: "ref-older", CreatedAt: now.Add(-time.Hour)}
		require.NoError(t, repository.Create(nil, &older))
		tied1 := models.Report{Filename: "tied1.json", ArtifactRef: "ref-tied1", CreatedAt: now}
		require.NoError(t, repository.Create(nil, &tied1))
		tied2 := models.Report{Filename: "tied2.json", ArtifactRef: "ref-tied2", CreatedAt: now}
		require.NoError(t, repository.Create(nil, &tied2))

		reports, err := repository.All()
		require.NoError(t, err)

		position := func(ref string) int {
			for i, report := range reports {
				if report.ArtifactRef == ref {
					return i
				}
			}
			return -1
		}

		require.NotEqual(t, -1, position("ref-older"))
		// both rows share a timestamp, the higher id wins
		assert.Less(t, position("ref-tied2"), position("ref-tied1"))
		assert.Less(t, position("ref-tied1"), position("ref-older"))
	})

	t.Run("delete removes exactly the addressed row", func(t *testing.T) {
		report := models.Report{Filename: "delete-me.json", ArtifactRef: "ref-delete"}
		require.NoError(t, repository.Create(nil, &report))

		deleted, err := repository.DeleteByArtifactRef("ref-delete")
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repository.FindByArtifactRef("ref-delete")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		deleted, err = repository.DeleteByArtifactRef("ref-delete")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
