package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

func studentActor() user.Actor {
	return user.Actor{UserID: "user-stu-1", StudentID: strPtr(testStudentID), Role: user.RoleStudent}
}

func adminActor() user.Actor {
	return user.Actor{UserID: "admin-1", Role: user.RoleAdmin}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.ApplicationStatusPending, created.Status)
	assert.Equal(t, testStudentID, created.StudentID)
	assert.Equal(t, 3, created.Days())
}

func TestSubmitRetiredTypeFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inactive := false
	_, err := f.service.Catalog.UpdateType(ctx, adminActor(), leave.UpdateLeaveTypeRequest{
		ID:       testPersonal,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	_, err = f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-02",
		Reason:      "Family function",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestSubmitRequiresStudentActor(t *testing.T) {
	f := newFixture()

	_, err := f.service.Applications.Submit(context.Background(), adminActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	assert.ErrorIs(t, err, user.ErrStudentAccessRequired)
}

func TestSubmitRejectsInvertedDateRange(t *testing.T) {
	f := newFixture()

	_, err := f.service.Applications.Submit(context.Background(), studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-04",
		EndDate:     "2026-03-02",
		Reason:      "Family function",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestSubmitRejectsTypeNotOffered(t *testing.T) {
	f := newFixture()
	f.typeRepo.types["lt-casual"] = leave.LeaveType{ID: "lt-casual", Name: "Casual Leave", IsActive: true}

	_, err := f.service.Applications.Submit(context.Background(), studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: "lt-casual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-02",
		Reason:      "Short break",
	})
	assert.ErrorIs(t, err, leave.ErrTypeNotOffered)
}

func TestSubmitCountsPendingAgainstBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 3 of 5 personal days pending.
	_, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	// Only 2 remain, a second 3-day request must not fit.
	_, err = f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-11",
		Reason:      "Travel",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// A 2-day request fits exactly.
	_, err = f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-10",
		Reason:      "Travel",
	})
	assert.NoError(t, err)
}

func TestSubmitUncappedTypeNeverBlocks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testMedical,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-31",
		Reason:      "Extended treatment",
	})
	assert.NoError(t, err)
}

func TestReviewApproveDecrementsBalanceAndLogs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	reviewed, err := f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.ApplicationStatusApproved, reviewed.Status)

	bal, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testPersonal)
	require.NoError(t, err)
	require.NotNil(t, bal.AvailableDays)
	assert.Equal(t, 2, *bal.AvailableDays)

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, created.ID, entry.ApplicationID)
	assert.Equal(t, leave.ApplicationStatusPending, entry.PreviousStatus)
	assert.Equal(t, leave.ApplicationStatusApproved, entry.NewStatus)
	assert.Equal(t, "admin-1", entry.ActionBy)
}

func TestReviewRejectLeavesBalanceUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	comment := "Clashes with assessments"
	reviewed, err := f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "rejected",
		Comment:       &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.ApplicationStatusRejected, reviewed.Status)

	bal, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testPersonal)
	require.NoError(t, err)
	require.NotNil(t, bal.AvailableDays)
	assert.Equal(t, 5, *bal.AvailableDays)

	// A rejection frees the pending days for a new request.
	_, err = f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-09",
		EndDate:     "2026-03-13",
		Reason:      "Travel",
	})
	assert.NoError(t, err)
}

func TestReviewTwiceFailsAndDecrementsOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	_, err = f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "approved",
	})
	require.NoError(t, err)

	_, err = f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "rejected",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)

	bal, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testPersonal)
	require.NoError(t, err)
	require.NotNil(t, bal.AvailableDays)
	assert.Equal(t, 2, *bal.AvailableDays)
	assert.Len(t, f.audit.entries, 1)
}

func TestReviewRequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	_, err = f.service.Applications.Review(ctx, studentActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "approved",
	})
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestAuditTrailVisibleToOwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	_, err = f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "approved",
	})
	require.NoError(t, err)

	entries, err := f.service.Applications.AuditTrail(ctx, studentActor(), created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	other := user.Actor{UserID: "user-stu-2", StudentID: strPtr("stu-2"), Role: user.RoleStudent}
	_, err = f.service.Applications.AuditTrail(ctx, other, created.ID)
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}
