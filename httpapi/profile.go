package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

type profileView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// handleProfile returns the caller's profile. Callers without a profiles row
// get the billing role and a name derived from their email.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
		return
	}

	view := profileView{
		ID:    user.ID,
		Email: user.Email,
		Role:  "billing",
		Name:  emailLocalPart(user.Email),
	}

	profile, err := s.q.GetProfile(r.Context(), user.ID)
	switch {
	case err == nil:
		if profile.Role.Valid && profile.Role.String != "" {
			view.Role = profile.Role.String
		}
		if profile.FullName.Valid && profile.FullName.String != "" {
			view.Name = profile.FullName.String
		}
	case errors.Is(err, pgx.ErrNoRows):
		s.log.WithField("user_id", user.ID).Warn("no profile found, returning defaults")
	default:
		s.log.WithError(err).Error("fetch profile failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func emailLocalPart(email string) string {
	if email == "" {
		return "User"
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
