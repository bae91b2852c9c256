package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/traindesk/tcms-backend-go/internal/domain/auth"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/handler/http/response"
)

// ActorFromRequest rebuilds the acting user from the verified JWT claims.
// Services take the actor explicitly rather than digging it out of the
// context themselves.
func ActorFromRequest(r *http.Request) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return user.Actor{}, auth.ErrInvalidToken
	}

	actor := user.Actor{
		UserID: userID,
		Role:   user.Role(role),
	}
	if studentID, ok := claims["student_id"].(string); ok && studentID != "" {
		actor.StudentID = &studentID
	}
	return actor, nil
}

// AdminOnly rejects requests from non-admin roles before they reach the
// handler. Services still gate their own mutations.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromRequest(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.IsAdmin() {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MarkerOnly admits trainers and admins, the roles allowed to mark
// attendance.
func MarkerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := ActorFromRequest(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !actor.CanMarkAttendance() {
			response.HandleError(w, user.ErrMarkerAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
