package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
	"github.com/wikibhasha/wikibhasha-engine/pkg/testhelpers"
)

func TestUsersList(t *testing.T) {
	svc := &mockUserService{
		listFunc: func(ctx context.Context, principal *models.Principal) (*services.UserListing, error) {
			return &services.UserListing{
				CurrentUser: principal.UserID,
				Users: []services.UserSummary{
					{UserID: 1, Name: "admin", CanCreateProjects: true},
					{UserID: 3, Name: "annotator", CanCreateProjects: false},
				},
			}, nil
		},
	}
	mux := newUsersMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer(3, false, "annotator"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var listing services.UserListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, int64(3), listing.CurrentUser)
	require.Len(t, listing.Users, 2)
	assert.True(t, listing.Users[0].CanCreateProjects)
	assert.False(t, listing.Users[1].CanCreateProjects)
}

func TestUsersListServiceError(t *testing.T) {
	svc := &mockUserService{
		listFunc: func(ctx context.Context, principal *models.Principal) (*services.UserListing, error) {
			return nil, assert.AnError
		},
	}
	mux := newUsersMux(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", testhelpers.GenerateTestJWTWithBearer(3, false, "annotator"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
