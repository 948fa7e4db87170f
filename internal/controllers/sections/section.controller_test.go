package sectionController_test

import (
	"context"
	"testing"

	"reefclean/config"
	sectionController "reefclean/internal/controllers/sections"
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

func newController(t *testing.T) (database.DB, sectionController.SectionControllerInterface) {
	t.Helper()

	db := testutil.NewDB(t)
	return db, sectionController.New(repositories.New(db), services.New(db, config.Config{}), db)
}

func TestSectionController_Templates(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	crew := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")

	for i, name := range []string{"Deck", "Hull"} {
		_, err := controller.CreateTemplate(ctx, admin, sectionController.CreateTemplateRequest{
			Name:  name,
			Order: 2 - i,
		})
		require.NoError(t, err)
	}

	templates, err := controller.ListTemplates(ctx, crew)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Hull", templates[0].Name)
	assert.Equal(t, "Deck", templates[1].Name)

	_, err = controller.CreateTemplate(ctx, crew, sectionController.CreateTemplateRequest{Name: "Mast"})
	assert.ErrorIs(t, err, types.ErrForbidden)

	_, err = controller.CreateTemplate(ctx, admin, sectionController.CreateTemplateRequest{Name: "Mast", Order: -1})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "order", types.FieldErrors(err)[0].Field)

	_, err = controller.ListTemplates(ctx, nil)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestSectionController_VesselSections(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	client := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, client.ID, "Sea Breeze")

	section, err := controller.CreateSection(ctx, admin, sectionController.CreateSectionRequest{
		VesselID: vessel.ID,
		Name:     "Hull",
		Order:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, vessel.ID, section.VesselID)

	order := 4
	description := "Below the waterline"
	updated, err := controller.UpdateSection(ctx, admin, section.ID, sectionController.UpdateSectionRequest{
		Order:       &order,
		Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hull", updated.Name)
	assert.Equal(t, 4, updated.Order)
	require.NotNil(t, updated.Description)

	_, err = controller.CreateSection(ctx, admin, sectionController.CreateSectionRequest{
		VesselID: uuid.New(),
		Name:     "Deck",
	})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "vesselId", types.FieldErrors(err)[0].Field)

	_, err = controller.UpdateSection(ctx, admin, uuid.New(), sectionController.UpdateSectionRequest{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSectionController_DeleteRemovesProgress(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	crew := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")
	client := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, client.ID, "Sea Breeze")
	sections := testutil.SeedSections(t, db, vessel.ID, "Hull", "Deck")

	job := &models.CleaningJob{VesselID: vessel.ID}
	require.NoError(t, db.SQL.Omit("Vessel", "Assignee", "Progress").Create(job).Error)
	for _, section := range sections {
		require.NoError(t, db.SQL.Omit("CleaningJob", "VesselSection", "Media").Create(&models.SectionProgress{
			CleaningJobID:   job.ID,
			VesselSectionID: section.ID,
		}).Error)
	}

	assert.ErrorIs(t, controller.DeleteSection(ctx, crew, sections[0].ID), types.ErrForbidden)
	require.NoError(t, controller.DeleteSection(ctx, admin, sections[0].ID))

	var rows int64
	require.NoError(t, db.SQL.Model(&models.SectionProgress{}).Where("cleaning_job_id = ?", job.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	assert.ErrorIs(t, controller.DeleteSection(ctx, admin, sections[0].ID), types.ErrNotFound)
}
