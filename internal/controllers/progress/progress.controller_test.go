package progressController_test

import (
	"context"
	"testing"

	"reefclean/config"
	progressController "reefclean/internal/controllers/progress"
	"reefclean/internal/database"
	"reefclean/internal/models"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/testutil"
	"reefclean/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       database.DB
	progress progressController.ProgressControllerInterface
	admin    *models.User
	crewA    *models.User
	crewB    *models.User
	job      *models.CleaningJob
	sections []models.VesselSection
	rows     []*models.SectionProgress
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	repos := repositories.New(db)
	svc := services.New(db, config.Config{})
	ctx := context.Background()

	crewA := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")
	owner := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, owner.ID, "Sea Breeze")
	sections := testutil.SeedSections(t, db, vessel.ID, "Hull", "Deck")

	job := &models.CleaningJob{VesselID: vessel.ID, AssignedTo: &crewA.ID}
	require.NoError(t, repos.Job.Create(ctx, db.SQL, job))

	rows := make([]*models.SectionProgress, 0, len(sections))
	for _, section := range sections {
		rows = append(rows, &models.SectionProgress{CleaningJobID: job.ID, VesselSectionID: section.ID})
	}
	require.NoError(t, repos.Job.CreateProgress(ctx, db.SQL, rows))

	return fixture{
		db:       db,
		progress: progressController.New(repos, svc, db),
		admin:    testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin"),
		crewA:    crewA,
		crewB:    testutil.SeedUser(t, db, models.RoleCrew, "Cora Crew"),
		job:      job,
		sections: sections,
		rows:     rows,
	}
}

func (f fixture) upsert(actor *models.User, sectionID uuid.UUID, percent int, note *string) (*models.SectionProgress, error) {
	return f.progress.Upsert(context.Background(), actor, progressController.UpsertProgressRequest{
		CleaningJobID:   f.job.ID,
		VesselSectionID: sectionID,
		Percent:         &percent,
		Note:            note,
	})
}

func (f fixture) countProgress(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.db.SQL.Model(&models.SectionProgress{}).Count(&count).Error)
	return count
}

func TestProgressController_UpsertIsIdempotent(t *testing.T) {
	f := newFixture(t)

	for range 3 {
		row, err := f.upsert(f.crewA, f.sections[0].ID, 60, nil)
		require.NoError(t, err)
		assert.Equal(t, 60, row.Percent)
		assert.Equal(t, f.rows[0].ID, row.ID)
	}

	assert.Equal(t, int64(2), f.countProgress(t))
}

func TestProgressController_UpsertLastWriteWins(t *testing.T) {
	f := newFixture(t)
	first := "first coat"
	second := "second coat"

	_, err := f.upsert(f.crewA, f.sections[1].ID, 30, &first)
	require.NoError(t, err)

	row, err := f.upsert(f.admin, f.sections[1].ID, 80, &second)
	require.NoError(t, err)
	assert.Equal(t, 80, row.Percent)
	require.NotNil(t, row.Note)
	assert.Equal(t, "second coat", *row.Note)
}

func TestProgressController_UpsertRejectsOutOfRangePercent(t *testing.T) {
	testCases := []struct {
		name    string
		percent int
	}{
		{"negative", -1},
		{"above hundred", 101},
		{"far above", 150},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.db.SQL.Delete(&models.SectionProgress{}, "id = ?", f.rows[0].ID).Error)

			_, err := f.upsert(f.crewA, f.sections[0].ID, tc.percent, nil)
			require.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, "percent", types.FieldErrors(err)[0].Field)
			assert.Equal(t, int64(1), f.countProgress(t))
		})
	}
}

func TestProgressController_UpsertRequiresPercent(t *testing.T) {
	f := newFixture(t)

	_, err := f.progress.Upsert(context.Background(), f.crewA, progressController.UpsertProgressRequest{
		CleaningJobID:   f.job.ID,
		VesselSectionID: f.sections[0].ID,
	})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "percent", types.FieldErrors(err)[0].Field)
}

func TestProgressController_UpsertValidatesBeforeAccess(t *testing.T) {
	f := newFixture(t)

	_, err := f.upsert(nil, f.sections[0].ID, 101, nil)
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = f.upsert(nil, f.sections[0].ID, 50, nil)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestProgressController_UpsertOwnership(t *testing.T) {
	f := newFixture(t)

	_, err := f.upsert(f.crewB, f.sections[0].ID, 40, nil)
	assert.ErrorIs(t, err, types.ErrForbidden)

	_, err = f.upsert(f.crewA, f.sections[0].ID, 40, nil)
	assert.NoError(t, err)

	_, err = f.upsert(f.admin, f.sections[0].ID, 45, nil)
	assert.NoError(t, err)

	var stored models.SectionProgress
	require.NoError(t, f.db.SQL.First(&stored, "id = ?", f.rows[0].ID).Error)
	assert.Equal(t, 45, stored.Percent)
}

func TestProgressController_UpsertRejectsForeignSection(t *testing.T) {
	f := newFixture(t)

	owner := testutil.SeedClient(t, f.db, "Other Marina")
	other := testutil.SeedVessel(t, f.db, owner.ID, "Dawn Treader")
	foreign := testutil.SeedSections(t, f.db, other.ID, "Keel")

	_, err := f.upsert(f.crewA, foreign[0].ID, 40, nil)
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "vesselSectionId", types.FieldErrors(err)[0].Field)

	assert.Equal(t, int64(2), f.countProgress(t))
}

func TestProgressController_UpsertUnknownSection(t *testing.T) {
	f := newFixture(t)

	_, err := f.upsert(f.crewA, uuid.New(), 40, nil)
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))

	assert.Equal(t, int64(2), f.countProgress(t))
}

func TestProgressController_UpsertUnknownJob(t *testing.T) {
	f := newFixture(t)
	percent := 10

	_, err := f.progress.Upsert(context.Background(), f.admin, progressController.UpsertProgressRequest{
		CleaningJobID:   uuid.New(),
		VesselSectionID: f.sections[0].ID,
		Percent:         &percent,
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProgressController_Media(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progress.AddMedia(ctx, f.crewA, progressController.AddMediaRequest{
		SectionProgressID: f.rows[0].ID,
		Kind:              models.MediaKindBefore,
		URL:               "not a url",
	})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "url", types.FieldErrors(err)[0].Field)

	_, err = f.progress.AddMedia(ctx, f.crewA, progressController.AddMediaRequest{
		SectionProgressID: f.rows[0].ID,
		Kind:              models.MediaKind("DURING"),
		URL:               "https://cdn.reefclean.test/hull.jpg",
	})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "kind", types.FieldErrors(err)[0].Field)

	_, err = f.progress.AddMedia(ctx, f.crewB, progressController.AddMediaRequest{
		SectionProgressID: f.rows[0].ID,
		Kind:              models.MediaKindBefore,
		URL:               "https://cdn.reefclean.test/hull.jpg",
	})
	assert.ErrorIs(t, err, types.ErrForbidden)

	caption := "port side"
	media, err := f.progress.AddMedia(ctx, f.crewA, progressController.AddMediaRequest{
		SectionProgressID: f.rows[0].ID,
		Kind:              models.MediaKindAfter,
		URL:               "https://cdn.reefclean.test/hull.jpg",
		Caption:           &caption,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaKindAfter, media.Kind)

	_, err = f.progress.AddMedia(ctx, f.admin, progressController.AddMediaRequest{
		SectionProgressID: uuid.New(),
		Kind:              models.MediaKindAfter,
		URL:               "https://cdn.reefclean.test/hull.jpg",
	})
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, f.progress.DeleteMedia(ctx, f.crewB, media.ID), types.ErrForbidden)
	require.NoError(t, f.progress.DeleteMedia(ctx, f.crewA, media.ID))
	assert.ErrorIs(t, f.progress.DeleteMedia(ctx, f.admin, media.ID), types.ErrNotFound)
}
