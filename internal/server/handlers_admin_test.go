package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListOrganizations(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleListOrganizations(rec, httptest.NewRequest(http.MethodGet, "/api/organizations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var orgs []organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orgs))
	require.Len(t, orgs, 4)
	assert.Equal(t, "TechCorp Solutions", orgs[0].Name)
}

func TestHandleGetOrganization(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/organizations/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()

	s.handleGetOrganization(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var org organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &org))
	assert.Equal(t, "Global Innovations Inc", org.Name)
}

func TestHandleGetOrganization_NotFound(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/organizations/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()

	s.handleGetOrganization(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Organization not found", decodeBody(t, rec)["error"])
}

func TestHandleListInterviews(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleListInterviews(rec, httptest.NewRequest(http.MethodGet, "/api/interviews", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var records []interviewRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "John Doe", records[0].Candidate)
	require.NotNil(t, records[0].Score)
	assert.Equal(t, 85, *records[0].Score)
	assert.Nil(t, records[1].Score)
}

func TestHandleStats(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1234, body["totalOrganizations"])
	assert.EqualValues(t, 99.9, body["systemHealth"])
}

func TestHandleAPIHealth(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.handleAPIHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}
