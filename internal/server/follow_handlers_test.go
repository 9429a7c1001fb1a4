package server

import (
	"fmt"
	"net/http"
	"testing"

	"chirper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollowFlow(t *testing.T) {
	_, app := newTestApp(t, nil)
	alice := signupUser(t, app, "alice")
	bob := signupUser(t, app, "bob")

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/users/follow/%d", bob.userID), "", alice, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var parsed struct {
		Following []models.User `json:"following"`
	}
	decodeBody(t, resp, &parsed)
	require.Len(t, parsed.Following, 1)
	assert.Equal(t, "bob", parsed.Following[0].Username)

	// Following twice stays a single edge.
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/users/follow/%d", bob.userID), "", alice, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	parsed.Following = nil
	decodeBody(t, resp, &parsed)
	assert.Len(t, parsed.Following, 1)

	// The relation is one-way: bob has no followees.
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/users/%d/following", bob.userID), "", bob, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	parsed.Following = nil
	decodeBody(t, resp, &parsed)
	assert.Empty(t, parsed.Following)

	// But bob does have a follower.
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/users/%d/followers", bob.userID), "", bob, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var followersBody struct {
		Followers []models.User `json:"followers"`
	}
	decodeBody(t, resp, &followersBody)
	require.Len(t, followersBody.Followers, 1)
	assert.Equal(t, "alice", followersBody.Followers[0].Username)

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/users/stop-following/%d", bob.userID), "", alice, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	parsed.Following = nil
	decodeBody(t, resp, &parsed)
	assert.Empty(t, parsed.Following)

	// Unfollowing again is a harmless no-op.
	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/users/stop-following/%d", bob.userID), "", alice, true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCannotFollowYourself(t *testing.T) {
	_, app := newTestApp(t, nil)
	alice := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/users/follow/%d", alice.userID), "", alice, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowUnknownUser(t *testing.T) {
	_, app := newTestApp(t, nil)
	alice := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/users/follow/9999", "", alice, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowListingsRequireSession(t *testing.T) {
	_, app := newTestApp(t, nil)
	alice := signupUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/users/%d/following", alice.userID), "", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/users/%d/followers", alice.userID), "", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
