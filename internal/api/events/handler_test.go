package events_test

import (
	"fmt"
	"net/http"
	"testing"

	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/series"
	"timeline-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createSeries(t *testing.T, db *gorm.DB, creatorID uint, title string) series.EventSeries {
	t.Helper()
	s := series.EventSeries{Title: title, CreatorID: creatorID}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func eventPayload(videoID string, platformID uint) map[string]interface{} {
	return map[string]interface{}{
		"event": map[string]interface{}{
			"title":                 "Episode " + videoID,
			"description":           "desc",
			"videoId":               videoID,
			"socialMediaId":         "channel-ext-1",
			"socialMediaPlatformId": platformID,
			"channelId":             "UCabc",
			"thumbnails":            map[string]string{"default": "https://i.ytimg.com/vi/" + videoID + "/default.jpg"},
		},
	}
}

type createEventResp struct {
	Success bool `json:"success"`
	Event   struct {
		EventSeriesID uint `json:"event_series_id"`
		EventID       uint `json:"event_id"`
		EventPosition int  `json:"event_position"`
	} `json:"event"`
	SourceContentID uint `json:"sourceContentId"`
}

func addEvent(t *testing.T, r *gin.Engine, token string, seriesID uint, videoID string, platformID uint) createEventResp {
	t.Helper()
	w := testutil.Do(r, http.MethodPost, fmt.Sprintf("/event_series/%d/event", seriesID), eventPayload(videoID, platformID), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp createEventResp
	testutil.Decode(t, w, &resp)
	return resp
}

func TestAddEventAssignsNextPosition(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")
	token := testutil.Token(t, user)
	platform := testutil.SeedPlatform(t, db)
	s := createSeries(t, db, user.ID, "Timeline")

	// empty series must append at 1, not fail on the missing max row
	first := addEvent(t, r, token, s.ID, "vid-1", platform.ID)
	assert.True(t, first.Success)
	assert.Equal(t, 1, first.Event.EventPosition)

	second := addEvent(t, r, token, s.ID, "vid-2", platform.ID)
	assert.Equal(t, 2, second.Event.EventPosition)

	third := addEvent(t, r, token, s.ID, "vid-3", platform.ID)
	assert.Equal(t, 3, third.Event.EventPosition)
}

func TestAddDuplicateVideoRejected(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")
	token := testutil.Token(t, user)
	platform := testutil.SeedPlatform(t, db)
	s := createSeries(t, db, user.ID, "Timeline")

	addEvent(t, r, token, s.ID, "abc123", platform.ID)
	addEvent(t, r, token, s.ID, "other", platform.ID)

	w := testutil.Do(r, http.MethodPost, fmt.Sprintf("/event_series/%d/event", s.ID), eventPayload("abc123", platform.ID), token)
	require.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]string
	testutil.Decode(t, w, &resp)
	assert.Equal(t, "This event already exists", resp["message"])

	// no new event row, no new ordering row
	var links int64
	require.NoError(t, db.Model(&series.EventSeriesEvent{}).Where("event_series_id = ?", s.ID).Count(&links).Error)
	assert.EqualValues(t, 2, links)
	var events int64
	require.NoError(t, db.Model(&series.Event{}).Count(&events).Error)
	assert.EqualValues(t, 2, events)
}

func TestFindOrCreateSourceContentIsIdempotent(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")
	token := testutil.Token(t, user)
	platform := testutil.SeedPlatform(t, db)
	s1 := createSeries(t, db, user.ID, "First")
	s2 := createSeries(t, db, user.ID, "Second")

	resp1 := addEvent(t, r, token, s1.ID, "abc123", platform.ID)
	resp2 := addEvent(t, r, token, s2.ID, "abc123", platform.ID)

	// the same video in another series reuses the row instead of duplicating
	assert.Equal(t, resp1.SourceContentID, resp2.SourceContentID)

	var contents int64
	require.NoError(t, db.Model(&content.SourceContent{}).Where("content_id = ?", "abc123").Count(&contents).Error)
	assert.EqualValues(t, 1, contents)

	var creators int64
	require.NoError(t, db.Model(&content.SourceContentCreator{}).Count(&creators).Error)
	assert.EqualValues(t, 1, creators)
}

func TestDeleteLastEventGarbageCollectsSourceContent(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")
	token := testutil.Token(t, user)
	platform := testutil.SeedPlatform(t, db)
	s1 := createSeries(t, db, user.ID, "First")
	s2 := createSeries(t, db, user.ID, "Second")

	resp1 := addEvent(t, r, token, s1.ID, "shared", platform.ID)
	resp2 := addEvent(t, r, token, s2.ID, "shared", platform.ID)
	require.Equal(t, resp1.SourceContentID, resp2.SourceContentID)

	require.NoError(t, db.Create(&content.Comment{
		SourceContentID: resp1.SourceContentID,
		Contents:        "a note",
	}).Error)

	// deleting one of two referencing events keeps content and comment
	w := testutil.Do(r, http.MethodDelete, fmt.Sprintf("/events/%d", resp1.Event.EventID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var contents int64
	require.NoError(t, db.Model(&content.SourceContent{}).Count(&contents).Error)
	assert.EqualValues(t, 1, contents)
	var comments int64
	require.NoError(t, db.Model(&content.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 1, comments)

	// deleting the last one takes comment and content with it
	w = testutil.Do(r, http.MethodDelete, fmt.Sprintf("/events/%d", resp2.Event.EventID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.Model(&content.SourceContent{}).Count(&contents).Error)
	assert.EqualValues(t, 0, contents)
	require.NoError(t, db.Model(&content.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 0, comments)
	var events int64
	require.NoError(t, db.Model(&series.Event{}).Count(&events).Error)
	assert.EqualValues(t, 0, events)
}

func TestDeleteEventRequiresOwnership(t *testing.T) {
	db, r := testutil.Setup(t)
	owner := testutil.CreateUser(t, db, "alice")
	stranger := testutil.CreateUser(t, db, "bob")
	platform := testutil.SeedPlatform(t, db)
	s := createSeries(t, db, owner.ID, "Timeline")

	resp := addEvent(t, r, testutil.Token(t, owner), s.ID, "vid-1", platform.ID)

	w := testutil.Do(r, http.MethodDelete, fmt.Sprintf("/events/%d", resp.Event.EventID), nil, testutil.Token(t, stranger))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var events int64
	require.NoError(t, db.Model(&series.Event{}).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestListSeriesEventsOrdered(t *testing.T) {
	db, r := testutil.Setup(t)
	user := testutil.CreateUser(t, db, "alice")
	token := testutil.Token(t, user)
	platform := testutil.SeedPlatform(t, db)
	s := createSeries(t, db, user.ID, "Timeline")

	addEvent(t, r, token, s.ID, "vid-1", platform.ID)
	addEvent(t, r, token, s.ID, "vid-2", platform.ID)

	w := testutil.Do(r, http.MethodGet, fmt.Sprintf("/event_series/%d/event", s.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			EventPosition int `json:"event_position"`
			SourceContent *struct {
				ContentID string `json:"content_id"`
				URL       string `json:"url"`
			} `json:"source_content"`
		} `json:"results"`
	}
	testutil.Decode(t, w, &resp)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Results[0].EventPosition)
	assert.Equal(t, 2, resp.Results[1].EventPosition)
	require.NotNil(t, resp.Results[0].SourceContent)
	assert.Equal(t, "vid-1", resp.Results[0].SourceContent.ContentID)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid-1", resp.Results[0].SourceContent.URL)
}

func TestListSeriesEventsUnknownSeries(t *testing.T) {
	_, r := testutil.Setup(t)

	w := testutil.Do(r, http.MethodGet, "/event_series/9999/event", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
