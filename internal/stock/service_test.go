package stock

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
	"github.com/stockyard-hq/stockyard-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(repo, logg)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateNewItemAvailableEqualsQty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "Cordless drill",
		Qty:         10,
	})
	require.NoError(t, err)
	require.Equal(t, 10, item.Qty)
	require.Equal(t, 10, item.AvailableStock)
	require.False(t, item.InMaintenance)
	require.Equal(t, 0, item.MaintenanceQuantity)
}

func TestServiceCreateRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), uuid.Nil, CreateStockItemRequest{
		Title:       "Drill",
		Description: "tool",
		Qty:         1,
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestServiceAssignMaintenanceFlow(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "Cordless drill",
		Qty:         10,
	})
	require.NoError(t, err)

	notes := "blade dull"
	updated, err := svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{
		MaintenanceQuantity: 3,
		MaintenanceNotes:    &notes,
	})
	require.NoError(t, err)
	require.True(t, updated.InMaintenance)
	require.Equal(t, 3, updated.MaintenanceQuantity)
	require.Equal(t, 7, updated.AvailableStock)
	require.Equal(t, "blade dull", *updated.MaintenanceNotes)

	inMaintenance, err := svc.ListInMaintenance(ctx)
	require.NoError(t, err)
	require.Len(t, inMaintenance, 1)
	require.Equal(t, item.ID, inMaintenance[0].ID)

	defaultList, err := svc.List(ctx, ScopeActive)
	require.NoError(t, err)
	require.Empty(t, defaultList)

	allList, err := svc.List(ctx, ScopeAll)
	require.NoError(t, err)
	require.Len(t, allList, 1)
}

func TestServiceAssignMaintenanceRejectsExcessQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "Cordless drill",
		Qty:         10,
	})
	require.NoError(t, err)

	notes := "blade dull"
	_, err = svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 3, MaintenanceNotes: &notes})
	require.NoError(t, err)

	_, err = svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 15})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	require.Equal(t, "Maintenance quantity cannot exceed available stock", typed.Message())

	// The stored item is untouched.
	current, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, current.MaintenanceQuantity)
	require.True(t, current.InMaintenance)
}

func TestServiceAssignMaintenanceZeroClearsFlag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "tool",
		Qty:         10,
	})
	require.NoError(t, err)

	notes := "checkup"
	_, err = svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 4, MaintenanceNotes: &notes})
	require.NoError(t, err)

	cleared, err := svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 0})
	require.NoError(t, err)
	require.False(t, cleared.InMaintenance)
	require.Equal(t, 0, cleared.MaintenanceQuantity)
	require.Equal(t, 10, cleared.AvailableStock)
}

func TestServiceAssignMaintenanceRejectsNegativeQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "tool",
		Qty:         10,
	})
	require.NoError(t, err)

	_, err = svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: -1})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceUpdateMaintenanceHasNoBoundCheck(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, uuid.New(), CreateStockItemRequest{
		Title:       "Drill",
		Description: "tool",
		Qty:         10,
	})
	require.NoError(t, err)

	// The detail endpoint accepts quantities above qty; available goes negative.
	updated, err := svc.UpdateMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 15})
	require.NoError(t, err)
	require.True(t, updated.InMaintenance)
	require.Equal(t, 15, updated.MaintenanceQuantity)
	require.Equal(t, -5, updated.AvailableStock)
}

func TestServiceUpdateDetailsPreservesOwnerAndMaintenance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	item, err := svc.Create(ctx, ownerID, CreateStockItemRequest{
		Title:       "Drill",
		Description: "tool",
		Qty:         10,
	})
	require.NoError(t, err)

	notes := "blade dull"
	_, err = svc.AssignMaintenance(ctx, item.ID, MaintenanceRequest{MaintenanceQuantity: 2, MaintenanceNotes: &notes})
	require.NoError(t, err)

	edited, err := svc.UpdateDetails(ctx, item.ID, UpdateStockDetailsRequest{
		Title:       "Impact drill",
		Description: "upgraded",
		Qty:         12,
	})
	require.NoError(t, err)
	require.Equal(t, "Impact drill", edited.Title)
	require.Equal(t, 12, edited.Qty)
	require.Equal(t, ownerID, edited.OwnerID)
	require.Equal(t, 2, edited.MaintenanceQuantity)
	require.True(t, edited.InMaintenance)
	require.Equal(t, 10, edited.AvailableStock)
}

func TestServiceGetUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
