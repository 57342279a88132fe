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

func TestGroupCRUD(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")

	// Signup created the "Default" group.
	rec := app.do(http.MethodGet, "/groups/", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode(t, rec)["groups"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, "Default", groups[0].(map[string]any)["name"])

	rec = app.do(http.MethodPost, "/groups/", `{"name":"  Work  "}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "Work", created["name"])
	groupID := int64(created["id"].(float64))

	rec = app.do(http.MethodGet, fmt.Sprintf("/groups/%d/", groupID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Work", decode(t, rec)["name"])

	rec = app.do(http.MethodPatch, fmt.Sprintf("/groups/%d/", groupID), `{"name":"Projects"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Projects", decode(t, rec)["name"])

	rec = app.do(http.MethodDelete, fmt.Sprintf("/groups/%d/", groupID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["deleted"])

	rec = app.do(http.MethodGet, fmt.Sprintf("/groups/%d/", groupID), "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateGroup_Validation(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")

	rec := app.do(http.MethodPost, "/groups/", `{"name":"   "}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/groups/", `{"name":"Default"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroups_RequireAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/groups/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/groups/", `{"name":"Work"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGroups_CrossUserIsNotFound(t *testing.T) {
	app := newTestApp(t)
	alice := app.signup(t, "alice@example.com")
	bob := app.signup(t, "bob@example.com")

	rec := app.do(http.MethodPost, "/groups/", `{"name":"Work"}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	groupID := int64(decode(t, rec)["id"].(float64))

	rec = app.do(http.MethodGet, fmt.Sprintf("/groups/%d/", groupID), "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodPatch, fmt.Sprintf("/groups/%d/", groupID), `{"name":"Stolen"}`, bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(http.MethodDelete, fmt.Sprintf("/groups/%d/", groupID), "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetGroup_NonNumericID(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")

	rec := app.do(http.MethodGet, "/groups/abc/", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteGroup_UpdatesCounters(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signup(t, "test@example.com")

	rec := app.do(http.MethodPost, "/groups/", `{"name":"Work"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	groupID := int64(decode(t, rec)["id"].(float64))

	rec = app.do(http.MethodPost, "/links/", fmt.Sprintf(`{"group_id":%d,"name":"Docs","url":"https://example.com"}`, groupID), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.do(http.MethodDelete, fmt.Sprintf("/groups/%d/", groupID), "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/users/me/", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, float64(1), user["total_groups"])
	assert.Equal(t, float64(0), user["total_links"])
}
