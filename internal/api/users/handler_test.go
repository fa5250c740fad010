package users_test

import (
	"fmt"
	"net/http"
	"testing"

	"timeline-app/internal/domain/series"
	"timeline-app/internal/domain/users"
	"timeline-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")

	w := testutil.Do(r, http.MethodGet, "/me", nil, testutil.Token(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	testutil.Decode(t, w, &got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	w = testutil.Do(r, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateUserSelfOnly(t *testing.T) {
	db, r := testutil.Setup(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	w := testutil.Do(r, http.MethodPut, fmt.Sprintf("/users/%d", alice.ID), map[string]interface{}{
		"display_name": "Hacked",
		"username":     "hacked",
	}, testutil.Token(t, bob))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored users.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "alice", stored.Username)

	w = testutil.Do(r, http.MethodPut, fmt.Sprintf("/users/%d", alice.ID), map[string]interface{}{
		"display_name": "Alice A.",
		"username":     "alice-a",
	}, testutil.Token(t, alice))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "Alice A.", stored.Name)
	assert.Equal(t, "alice-a", stored.Username)
}

func TestUpdateUserRejectsShortUsername(t *testing.T) {
	db, r := testutil.Setup(t)
	alice := testutil.CreateUser(t, db, "alice")

	w := testutil.Do(r, http.MethodPut, fmt.Sprintf("/users/%d", alice.ID), map[string]interface{}{
		"username": "ab",
	}, testutil.Token(t, alice))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored users.User
	require.NoError(t, db.First(&stored, alice.ID).Error)
	assert.Equal(t, "alice", stored.Username)
}

func TestSubscribeFlow(t *testing.T) {
	db, r := testutil.Setup(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	token := testutil.Token(t, alice)

	// cannot subscribe to yourself
	w := testutil.Do(r, http.MethodPost, fmt.Sprintf("/users/%d/subscribe", alice.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// subscribing twice stays a single row
	for i := 0; i < 2; i++ {
		w = testutil.Do(r, http.MethodPost, fmt.Sprintf("/users/%d/subscribe", bob.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	var n int64
	require.NoError(t, db.Model(&users.Subscription{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// the target's profile reports the viewer as subscribed
	var profile struct {
		IsSubscribed bool `json:"is_subscribed"`
	}
	w = testutil.Do(r, http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &profile)
	assert.True(t, profile.IsSubscribed)

	w = testutil.Do(r, http.MethodDelete, fmt.Sprintf("/users/%d/subscribe", bob.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&users.Subscription{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestProfileHidesOthersPrivateSeries(t *testing.T) {
	db, r := testutil.Setup(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, db.Create(&series.EventSeries{Title: "Public", CreatorID: alice.ID}).Error)
	require.NoError(t, db.Create(&series.EventSeries{Title: "Hidden", CreatorID: alice.ID, IsPrivate: true}).Error)

	var profile struct {
		Series []struct {
			Title string `json:"title"`
		} `json:"series"`
	}

	w := testutil.Do(r, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), nil, testutil.Token(t, bob))
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &profile)
	require.Len(t, profile.Series, 1)
	assert.Equal(t, "Public", profile.Series[0].Title)

	w = testutil.Do(r, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), nil, testutil.Token(t, alice))
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &profile)
	assert.Len(t, profile.Series, 2)
}

func TestProfileListsLikedSeries(t *testing.T) {
	db, r := testutil.Setup(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	s := series.EventSeries{Title: "Liked one", CreatorID: bob.ID}
	require.NoError(t, db.Create(&s).Error)
	require.NoError(t, db.Create(&series.UserSeriesLike{UserID: alice.ID, EventSeriesID: s.ID}).Error)

	var profile struct {
		Likes []struct {
			ID uint `json:"id"`
		} `json:"likes"`
	}
	w := testutil.Do(r, http.MethodGet, fmt.Sprintf("/users/%d", alice.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &profile)
	require.Len(t, profile.Likes, 1)
	assert.Equal(t, s.ID, profile.Likes[0].ID)
}

func TestProfileUnknownUser(t *testing.T) {
	_, r := testutil.Setup(t)
	w := testutil.Do(r, http.MethodGet, "/users/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
