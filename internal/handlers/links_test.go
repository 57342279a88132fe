// Copyright 2025 The linkman authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createGroup makes a group via the API and returns its id.
func (a *testApp) createGroup(t *testing.T, cookie *http.Cookie, name string) int64 {
	t.Helper()
	rec := a.do(http.MethodPost, "/groups/", `{"name":"`+name+`"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	return int64(decode(t, rec)["id"].(float64))
}

// createLink makes a link via the API and returns its id.
func (a *testApp) createLink(t *testing.T, cookie *http.Cookie, groupID int64, name, url string) int64 {
	t.Helper()
	body := fmt.Sprintf(`{"group_id":%d,"name":"%s","url":"%s"}`, groupID, name, url)
	rec := a.do(http.MethodPost, "/links/", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	return int64(decode(t, rec)["id"].(float64))
}

func TestLinkCRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")

	rec := app.do(http.MethodPost, "/links/", fmt.Sprintf(`{"group_id":%d,"name":"Docs","url":"https://example.com/docs"}`, groupID), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "Docs", created["name"])
	assert.Equal(t, float64(0), created["click_count"])
	linkID := int64(created["id"].(float64))

	rec = app.do(http.MethodGet, fmt.Sprintf("/links/%d/", linkID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com/docs", decode(t, rec)["url"])

	rec = app.do(http.MethodDelete, fmt.Sprintf("/links/%d/", linkID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["deleted"])

	rec = app.do(http.MethodGet, fmt.Sprintf("/links/%d/", linkID), "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateLink_Validation(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")

	rec := app.do(http.MethodPost, "/links/", `{"name":"Docs","url":"https://example.com"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "group_id is required", decode(t, rec)["error"])

	rec = app.do(http.MethodPost, "/links/", fmt.Sprintf(`{"group_id":%d,"name":"","url":"https://example.com"}`, groupID), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/links/", fmt.Sprintf(`{"group_id":%d,"name":"Docs","url":""}`, groupID), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A group of another user does not exist from this user's view.
	other := app.signup(t, "other@example.com")
	otherGroup := app.createGroup(t, other, "Work")
	rec = app.do(http.MethodPost, "/links/", fmt.Sprintf(`{"group_id":%d,"name":"Docs","url":"https://example.com"}`, otherGroup), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLinks_GroupFilter(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	work := app.createGroup(t, cookie, "Work")
	home := app.createGroup(t, cookie, "Home")
	app.createLink(t, cookie, work, "Docs", "https://example.com/docs")
	app.createLink(t, cookie, home, "News", "https://example.com/news")

	rec := app.do(http.MethodGet, "/links/", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["links"].([]any), 2)

	rec = app.do(http.MethodGet, fmt.Sprintf("/links/?group=%d", work), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	links := decode(t, rec)["links"].([]any)
	require.Len(t, links, 1)
	assert.Equal(t, "Docs", links[0].(map[string]any)["name"])

	rec = app.do(http.MethodGet, "/links/?group=abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateLink_Rename(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	work := app.createGroup(t, cookie, "Work")
	home := app.createGroup(t, cookie, "Home")
	linkID := app.createLink(t, cookie, work, "Docs", "https://example.com/docs")

	body := fmt.Sprintf(`{"name":"Documentation","url":"https://example.com/documentation","group_id":%d}`, home)
	rec := app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), body, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode(t, rec)
	assert.Equal(t, "Documentation", updated["name"])
	assert.Equal(t, float64(home), updated["group_id"])
	assert.Equal(t, float64(0), updated["click_count"])
}

func TestUpdateLink_RecordClick(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")
	linkID := app.createLink(t, cookie, groupID, "Docs", "https://example.com/docs")

	rec := app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), `{"clicked":true}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["click_count"])

	rec = app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), `{"clicked":true}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, float64(2), updated["click_count"])
	assert.Equal(t, "Docs", updated["name"])
}

func TestUpdateLink_ClickExcludesOtherFields(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")
	linkID := app.createLink(t, cookie, groupID, "Docs", "https://example.com/docs")

	rec := app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), `{"clicked":true,"name":"Other"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a click update cannot set other fields", decode(t, rec)["error"])
}

func TestUpdateLink_RenameRequiresGroup(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")
	linkID := app.createLink(t, cookie, groupID, "Docs", "https://example.com/docs")

	rec := app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), `{"name":"Docs","url":"https://example.com"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "group_id is required", decode(t, rec)["error"])
}

func TestLinks_CrossUserIsNotFound(t *testing.T) {
	app := newTestApp(t)
	alice := app.signup(t, "alice@example.com")
	bob := app.signup(t, "bob@example.com")

	groupID := app.createGroup(t, alice, "Work")
	linkID := app.createLink(t, alice, groupID, "Docs", "https://example.com/docs")

	rec := app.do(http.MethodGet, fmt.Sprintf("/links/%d/", linkID), "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPut, fmt.Sprintf("/links/%d/", linkID), `{"clicked":true}`, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodDelete, fmt.Sprintf("/links/%d/", linkID), "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinks_GoneAfterGroupDelete(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")
	groupID := app.createGroup(t, cookie, "Work")
	linkID := app.createLink(t, cookie, groupID, "Docs", "https://example.com/docs")

	rec := app.do(http.MethodDelete, fmt.Sprintf("/groups/%d/", groupID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, fmt.Sprintf("/links/%d/", linkID), "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
