package vesselController_test

import (
	"context"
	"testing"

	"reefclean/config"
	vesselController "reefclean/internal/controllers/vessels"
	"reefclean/internal/database"
	"reefclean/internal/models"
	"reefclean/internal/repositories"
	"reefclean/internal/services"
	"reefclean/internal/testutil"
	"reefclean/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (database.DB, vesselController.VesselControllerInterface) {
	t.Helper()

	db := testutil.NewDB(t)
	return db, vesselController.New(repositories.New(db), services.New(db, config.Config{}), db)
}

func TestVesselController_CreateAndGet(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	client := testutil.SeedClient(t, db, "Test Marina")

	length := decimal.RequireFromString("12.50")
	vessel, err := controller.Create(ctx, admin, vesselController.CreateVesselRequest{
		ClientID: client.ID,
		Name:     "  Sea Breeze ",
		Type:     models.VesselTypeSailboat,
		Length:   &length,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", vessel.Name)

	detail, err := controller.Get(ctx, admin, vessel.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Client)
	assert.Equal(t, "Test Marina", detail.Client.Name)
	require.NotNil(t, detail.Length)
	assert.True(t, length.Equal(*detail.Length))
	assert.Empty(t, detail.Jobs)
}

func TestVesselController_CreateValidation(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	crew := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")
	client := testutil.SeedClient(t, db, "Test Marina")

	negative := decimal.NewFromInt(-3)

	testCases := []struct {
		name    string
		actor   *models.User
		request vesselController.CreateVesselRequest
		kind    error
		field   string
	}{
		{
			name:    "unknown type",
			actor:   admin,
			request: vesselController.CreateVesselRequest{ClientID: client.ID, Name: "A", Type: "SUBMARINE"},
			kind:    types.ErrValidation,
			field:   "type",
		},
		{
			name:    "unknown client",
			actor:   admin,
			request: vesselController.CreateVesselRequest{ClientID: uuid.New(), Name: "A", Type: models.VesselTypeBoat},
			kind:    types.ErrValidation,
			field:   "clientId",
		},
		{
			name:    "negative length",
			actor:   admin,
			request: vesselController.CreateVesselRequest{ClientID: client.ID, Name: "A", Type: models.VesselTypeBoat, Length: &negative},
			kind:    types.ErrValidation,
			field:   "length",
		},
		{
			name:    "crew cannot create",
			actor:   crew,
			request: vesselController.CreateVesselRequest{ClientID: client.ID, Name: "A", Type: models.VesselTypeBoat},
			kind:    types.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := controller.Create(ctx, tc.actor, tc.request)
			require.ErrorIs(t, err, tc.kind)
			if tc.field != "" {
				assert.Equal(t, tc.field, types.FieldErrors(err)[0].Field)
			}
		})
	}
}

func TestVesselController_UpdateKeepsMissingFields(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	client := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, client.ID, "Sea Breeze")

	registration := "NZ-4411"
	updated, err := controller.Update(ctx, admin, vessel.ID, vesselController.UpdateVesselRequest{
		RegistrationNo: &registration,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", updated.Name)
	assert.Equal(t, models.VesselTypeYacht, updated.Type)
	require.NotNil(t, updated.RegistrationNo)
	assert.Equal(t, "NZ-4411", *updated.RegistrationNo)

	_, err = controller.Update(ctx, admin, uuid.New(), vesselController.UpdateVesselRequest{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestVesselController_ListFiltersAndSearch(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	reader := testutil.SeedUser(t, db, models.RoleClient, "Cliff Client")
	first := testutil.SeedClient(t, db, "Test Marina")
	second := testutil.SeedClient(t, db, "Harbour Co")

	testutil.SeedVessel(t, db, first.ID, "Sea Breeze")
	testutil.SeedVessel(t, db, first.ID, "Blue Lagoon")
	testutil.SeedVessel(t, db, second.ID, "Seahorse")

	page, err := controller.List(ctx, reader, vesselController.ListVesselsRequest{ClientID: &first.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Blue Lagoon", page.Items[0].Name)

	page, err = controller.List(ctx, reader, vesselController.ListVesselsRequest{Search: "SEA"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	_, err = controller.List(ctx, nil, vesselController.ListVesselsRequest{})
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestVesselController_CreateSectionsFromTemplates(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	crew := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")
	client := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, client.ID, "Sea Breeze")

	cabin := testutil.SeedTemplate(t, db, "Cabin", 3)
	hull := testutil.SeedTemplate(t, db, "Hull", 1)
	deck := testutil.SeedTemplate(t, db, "Deck", 2)

	sections, err := controller.CreateSectionsFromTemplates(ctx, admin, vessel.ID,
		vesselController.CreateSectionsFromTemplatesRequest{
			TemplateIDs: []uuid.UUID{cabin.ID, hull.ID, deck.ID, hull.ID},
		})
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "Hull", sections[0].Name)
	assert.Equal(t, "Deck", sections[1].Name)
	assert.Equal(t, "Cabin", sections[2].Name)

	require.NoError(t, db.SQL.Model(&models.SectionTemplate{}).
		Where("id = ?", hull.ID).
		Update("name", "Hull and keel").Error)

	detail, err := controller.Get(ctx, admin, vessel.ID)
	require.NoError(t, err)
	require.Len(t, detail.Sections, 3)
	assert.Equal(t, "Hull", detail.Sections[0].Name)

	_, err = controller.CreateSectionsFromTemplates(ctx, admin, vessel.ID,
		vesselController.CreateSectionsFromTemplatesRequest{TemplateIDs: []uuid.UUID{hull.ID, uuid.New()}})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "templateIds", types.FieldErrors(err)[0].Field)

	_, err = controller.CreateSectionsFromTemplates(ctx, admin, vessel.ID,
		vesselController.CreateSectionsFromTemplatesRequest{})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = controller.CreateSectionsFromTemplates(ctx, crew, vessel.ID,
		vesselController.CreateSectionsFromTemplatesRequest{TemplateIDs: []uuid.UUID{hull.ID}})
	assert.ErrorIs(t, err, types.ErrForbidden)

	var count int64
	require.NoError(t, db.SQL.Model(&models.VesselSection{}).Where("vessel_id = ?", vessel.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestVesselController_Delete(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")
	client := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, client.ID, "Sea Breeze")
	testutil.SeedSections(t, db, vessel.ID, "Hull", "Deck")

	require.NoError(t, controller.Delete(ctx, admin, vessel.ID))

	var count int64
	require.NoError(t, db.SQL.Model(&models.VesselSection{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, controller.Delete(ctx, admin, vessel.ID), types.ErrNotFound)
}
