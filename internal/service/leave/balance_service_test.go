package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
	"github.com/traindesk/tcms-backend-go/internal/domain/master/batch"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
)

func TestEnsureBalanceRowsSeedsFromBatchAllowance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Balances.EnsureBalanceRows(ctx, testStudentID))

	personal, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testPersonal)
	require.NoError(t, err)
	require.NotNil(t, personal.AvailableDays)
	assert.Equal(t, 5, *personal.AvailableDays)

	// Medical is offered without a cap, the row stays NULL.
	medical, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testMedical)
	require.NoError(t, err)
	assert.Nil(t, medical.AvailableDays)
}

func TestEnsureBalanceRowsFallsBackToCatalogDefault(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Not offered by the batch, but the catalog carries a default cap.
	defaultDays := 2
	f.typeRepo.types["lt-exam"] = leave.LeaveType{ID: "lt-exam", Name: "Exam Leave", DefaultMaxDays: &defaultDays, IsActive: true}

	require.NoError(t, f.service.Balances.EnsureBalanceRows(ctx, testStudentID))

	exam, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, "lt-exam")
	require.NoError(t, err)
	require.NotNil(t, exam.AvailableDays)
	assert.Equal(t, 2, *exam.AvailableDays)
}

func TestEnsureBalanceRowsIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.service.Balances.EnsureBalanceRows(ctx, testStudentID))
	require.NoError(t, f.balRepo.DecrementAvailable(ctx, testStudentID, testPersonal, 3))

	// A second ensure must not reset the decremented value.
	require.NoError(t, f.service.Balances.EnsureBalanceRows(ctx, testStudentID))

	personal, err := f.balRepo.GetByStudentAndType(ctx, testStudentID, testPersonal)
	require.NoError(t, err)
	require.NotNil(t, personal.AvailableDays)
	assert.Equal(t, 2, *personal.AvailableDays)
}

func TestRemainingAfterApprovalMatchesLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testPersonal,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "Family function",
	})
	require.NoError(t, err)

	lt := f.typeRepo.types[testPersonal]
	maxDays := 5
	allowance := leave.Allowance{Offered: true, MaxDays: maxDays}

	// Pending days count against the remaining figure.
	remaining, used, pending, err := f.service.Balances.Remaining(ctx, testStudentID, lt, allowance)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, 0, used)
	assert.Equal(t, 3, pending)

	_, err = f.service.Applications.Review(ctx, adminActor(), leave.ReviewLeaveRequest{
		ApplicationID: created.ID,
		Decision:      "approved",
	})
	require.NoError(t, err)

	// Approval moves the days from pending to used; remaining is unchanged.
	remaining, used, pending, err = f.service.Balances.Remaining(ctx, testStudentID, lt, allowance)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, 3, used)
	assert.Equal(t, 0, pending)
}

func TestStudentSummariesReportsAllCatalogTypes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Applications.Submit(ctx, studentActor(), leave.SubmitLeaveRequest{
		LeaveTypeID: testMedical,
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-03",
		Reason:      "Fever",
	})
	require.NoError(t, err)

	summaries, err := f.service.Balances.StudentSummaries(ctx, testStudentID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byType := make(map[string]leave.BalanceSummary, len(summaries))
	for _, s := range summaries {
		byType[s.LeaveTypeName] = s
	}

	personal := byType[batch.TypeNamePersonal]
	assert.True(t, personal.Capped)
	assert.Equal(t, 5, personal.RemainingDays)

	medical := byType[batch.TypeNameMedical]
	assert.False(t, medical.Capped)
	assert.Equal(t, 2, medical.PendingDays)
}

func TestAllSummariesRequiresAdmin(t *testing.T) {
	f := newFixture()

	_, err := f.service.Balances.AllSummaries(context.Background(), studentActor())
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}
