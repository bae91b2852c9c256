package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

func TestCreateTypeRequiresAdmin(t *testing.T) {
	f := newFixture()

	_, err := f.service.Catalog.CreateType(context.Background(), studentActor(), leave.CreateLeaveTypeRequest{
		Name: "Exam Leave",
	})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestCreateAndUpdateType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	defaultDays := 3
	created, err := f.service.Catalog.CreateType(ctx, adminActor(), leave.CreateLeaveTypeRequest{
		Name:           "Exam Leave",
		DefaultMaxDays: &defaultDays,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	newName := "Examination Leave"
	updated, err := f.service.Catalog.UpdateType(ctx, adminActor(), leave.UpdateLeaveTypeRequest{
		ID:   created.ID,
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Examination Leave", updated.Name)
	require.NotNil(t, updated.DefaultMaxDays)
	assert.Equal(t, 3, *updated.DefaultMaxDays)
}

func TestListTypesExcludesInactive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inactive := false
	_, err := f.service.Catalog.UpdateType(ctx, adminActor(), leave.UpdateLeaveTypeRequest{
		ID:       testMedical,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	types, err := f.service.Catalog.ListTypes(ctx, false)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, testPersonal, types[0].ID)

	all, err := f.service.Catalog.ListTypes(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteReferencedTypeDeactivates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-03",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Catalog.DeleteType(ctx, adminActor(), testPersonal))

	// The row survives so the application history keeps resolving.
	lt, err := f.service.Catalog.GetType(ctx, testPersonal)
	require.NoError(t, err)
	assert.False(t, lt.IsActive)

	types, err := f.service.Catalog.ListTypes(ctx, false)
	require.NoError(t, err)
	for _, got := range types {
		assert.NotEqual(t, testPersonal, got.ID)
	}
}

func TestDeleteUnreferencedTypeRemoves(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Catalog.DeleteType(ctx, adminActor(), testMedical))

	_, err := f.service.Catalog.GetType(ctx, testMedical)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestUpdateUnknownTypeFails(t *testing.T) {
	f := newFixture()

	name := "Ghost"
	_, err := f.service.Catalog.UpdateType(context.Background(), adminActor(), leave.UpdateLeaveTypeRequest{
		ID:   "lt-missing",
		Name: &name,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}
