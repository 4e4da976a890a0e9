package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProjectViaAPI(t *testing.T, app *fiber.App, token string, body fiber.Map) map[string]any {
	t.Helper()
	var project map[string]any
	resp := doJSON(t, app, http.MethodPost, "/api/projects", token, body, &project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return project
}

func TestProjectLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "alice")

	project := createProjectViaAPI(t, app, token, fiber.Map{
		"name":         "Landing Page",
		"html_content": "<h1>hello</h1>",
		"category":     "business",
	})
	id := uint(project["id"].(float64))
	assert.Equal(t, "draft", project["status"])

	// Detail
	var detail map[string]any
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<h1>hello</h1>", detail["html_content"])

	// Listing elides content
	var list []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/projects", token, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "html_content")

	// Partial update
	var updated map[string]any
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), token, fiber.Map{
		"name":   "Renamed",
		"status": "published",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", updated["name"])
	assert.Equal(t, "published", updated["status"])
	assert.Equal(t, "<h1>hello</h1>", updated["html_content"], "absent fields stay put")

	// Delete
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProjectOwnershipIsolationOverAPI(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	project := createProjectViaAPI(t, app, aliceToken, fiber.Map{"name": "Private"})
	id := uint(project["id"].(float64))

	// Bob cannot see, modify or delete Alice's private project
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), bobToken, fiber.Map{"name": "Hijacked"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Bob's listing does not include it
	var list []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/projects", bobToken, nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)
}

func TestPublicProjectVisibility(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	public := createProjectViaAPI(t, app, aliceToken, fiber.Map{
		"name":      "Shared Page",
		"is_public": true,
		"category":  "portfolio",
	})
	createProjectViaAPI(t, app, aliceToken, fiber.Map{"name": "Hidden"})
	id := uint(public["id"].(float64))

	// Anyone logged in can read a public project's detail
	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Public listing needs no token at all
	var list []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/projects/public", "", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "Shared Page", list[0]["name"])

	var filtered []map[string]any
	resp = doJSON(t, app, http.MethodGet, "/api/projects/public?category=blog", "", nil, &filtered)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, filtered)
}

func TestProjectVersionEndpoints(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "alice")

	project := createProjectViaAPI(t, app, token, fiber.Map{
		"name":         "Versioned",
		"html_content": "<p>v1</p>",
	})
	id := uint(project["id"].(float64))

	var version map[string]any
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/projects/%d/versions", id), token, fiber.Map{
		"description": "first snapshot",
	}, &version)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), version["version_number"])

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/projects/%d/versions", id), token, fiber.Map{}, &version)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), version["version_number"])

	var versions []map[string]any
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d/versions", id), token, nil, &versions)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, versions, 2)
	assert.Equal(t, float64(2), versions[0]["version_number"], "newest first")
}

func TestProjectDuplicateEndpoint(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "alice")

	project := createProjectViaAPI(t, app, token, fiber.Map{
		"name":      "Original",
		"is_public": true,
		"status":    "published",
	})
	id := uint(project["id"].(float64))

	var clone map[string]any
	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/projects/%d/duplicate", id), token, nil, &clone)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Original (Copy)", clone["name"])
	assert.Equal(t, false, clone["is_public"])
	assert.Equal(t, "draft", clone["status"])
}

func TestProjectExportEndpoint(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "alice")

	project := createProjectViaAPI(t, app, token, fiber.Map{
		"name":         "Export Me",
		"html_content": "<h1>content</h1>",
		"css_content":  "h1 { font-size: 2rem; }",
	})
	id := uint(project["id"].(float64))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/projects/%d/export?format=html", id), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "export-me.html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "<h1>content</h1>"))
	assert.True(t, strings.Contains(string(body), "font-size: 2rem"))

	// Unsupported formats are a validation error
	badResp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d/export?format=pdf", id), token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestProjectInvalidIDParam(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "alice")

	resp := doJSON(t, app, http.MethodGet, "/api/projects/notanumber", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
