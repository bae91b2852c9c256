package response

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/traindesk/tcms-backend-go/internal/domain/leave"
)

func TestHandleErrorLogsUnexpectedErrors(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	rec := httptest.NewRecorder()
	wrapped := fmt.Errorf("failed to decrement balance for student stu-1: %w", errors.New("connection reset"))
	HandleError(rec, wrapped)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The wrapped context lands in the log, not in the response body.
	assert.Contains(t, buf.String(), "failed to decrement balance for student stu-1")
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestHandleErrorMapsLeaveSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{leave.ErrLeaveTypeNotFound, http.StatusNotFound},
		{leave.ErrLeaveTypeInactive, http.StatusBadRequest},
		{leave.ErrInsufficientBalance, http.StatusBadRequest},
		{leave.ErrAlreadyReviewed, http.StatusConflict},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, tc.err)
		assert.Equal(t, tc.code, rec.Code, "unexpected status for %v", tc.err)
	}
}
