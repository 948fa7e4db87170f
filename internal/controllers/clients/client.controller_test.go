package clientController_test

import (
	"context"
	"testing"

	"reefclean/config"
	clientController "reefclean/internal/controllers/clients"
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

func newController(t *testing.T) (database.DB, clientController.ClientControllerInterface) {
	t.Helper()

	db := testutil.NewDB(t)
	return db, clientController.New(repositories.New(db), services.New(db, config.Config{}), db)
}

func strPtr(s string) *string {
	return &s
}

func TestClientController_CRUD(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")

	created, err := controller.Create(ctx, admin, clientController.CreateClientRequest{
		Name:        "Test Marina",
		Email:       strPtr("office@testmarina.test"),
		CompanyName: strPtr("Test Marina Ltd"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	updated, err := controller.Update(ctx, admin, created.ID, clientController.UpdateClientRequest{
		Phone: strPtr("+64 9 555 0101"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Test Marina", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "office@testmarina.test", *updated.Email)
	require.NotNil(t, updated.Phone)

	testutil.SeedVessel(t, db, created.ID, "Sea Breeze")

	detail, err := controller.Get(ctx, admin, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Vessels, 1)
	assert.Equal(t, "Sea Breeze", detail.Vessels[0].Name)

	require.NoError(t, controller.Delete(ctx, admin, created.ID))

	_, err = controller.Get(ctx, admin, created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	var vessels int64
	require.NoError(t, db.SQL.Model(&models.Vessel{}).Count(&vessels).Error)
	assert.Zero(t, vessels)
}

func TestClientController_Validation(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin")

	_, err := controller.Create(ctx, admin, clientController.CreateClientRequest{})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "name", types.FieldErrors(err)[0].Field)

	_, err = controller.Create(ctx, admin, clientController.CreateClientRequest{
		Name:  "Test Marina",
		Email: strPtr("not-an-email"),
	})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "email", types.FieldErrors(err)[0].Field)

	_, err = controller.Create(ctx, admin, clientController.CreateClientRequest{Name: "   "})
	require.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "name", types.FieldErrors(err)[0].Field)
}

func TestClientController_AdminOnlyWrites(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	crew := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")
	client := testutil.SeedClient(t, db, "Test Marina")

	_, err := controller.Create(ctx, crew, clientController.CreateClientRequest{Name: "Harbour Co"})
	assert.ErrorIs(t, err, types.ErrForbidden)

	_, err = controller.Update(ctx, crew, client.ID, clientController.UpdateClientRequest{Name: strPtr("Renamed")})
	assert.ErrorIs(t, err, types.ErrForbidden)

	assert.ErrorIs(t, controller.Delete(ctx, crew, client.ID), types.ErrForbidden)
	assert.ErrorIs(t, controller.Delete(ctx, nil, client.ID), types.ErrUnauthenticated)

	_, err = controller.Get(ctx, crew, client.ID)
	assert.NoError(t, err)
}

func TestClientController_ListSearchAndPaging(t *testing.T) {
	db, controller := newController(t)
	ctx := context.Background()
	reader := testutil.SeedUser(t, db, models.RoleClient, "Cliff Client")

	for _, name := range []string{"Delta Docks", "Alpha Anchorage", "Charlie Cove", "Bravo Berths"} {
		testutil.SeedClient(t, db, name)
	}

	first, err := controller.List(ctx, reader, clientController.ListClientsRequest{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	assert.Equal(t, "Alpha Anchorage", first.Items[0].Name)
	require.NotNil(t, first.NextCursor)

	second, err := controller.List(ctx, reader, clientController.ListClientsRequest{Limit: 3, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "Delta Docks", second.Items[0].Name)
	assert.Nil(t, second.NextCursor)

	found, err := controller.List(ctx, reader, clientController.ListClientsRequest{Search: "COVE"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Charlie Cove", found.Items[0].Name)

	_, err = controller.List(ctx, reader, clientController.ListClientsRequest{Limit: -1})
	assert.ErrorIs(t, err, types.ErrValidation)
}
