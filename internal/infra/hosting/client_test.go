package hosting

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(&Config{
		baseURL:    srv.URL,
		token:      "test-token",
		baseDomain: "netlify.app",
		timeout:    2 * time.Second,
	})
}

func TestCreateSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/sites", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aling-nena", body["name"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Site{ID: "site-1", Name: "aling-nena", URL: "https://aling-nena.netlify.app"})
	}))
	defer srv.Close()

	site, err := testClient(srv).CreateSite(t.Context(), "aling-nena")
	require.NoError(t, err)
	assert.Equal(t, "site-1", site.ID)
	assert.Equal(t, "https://aling-nena.netlify.app", site.URL)
}

func TestCreateSiteNameTaken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := testClient(srv).CreateSite(t.Context(), "taken")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestDeployReportsRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/deploys", r.URL.Path)

		var body struct {
			Files map[string]string `json:"files"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "abc123", body.Files["/index.html"])

		_ = json.NewEncoder(w).Encode(Deploy{ID: "deploy-1", Required: []string{"abc123"}})
	}))
	defer srv.Close()

	deploy, err := testClient(srv).Deploy(t.Context(), "site-1", map[string]string{"/index.html": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "deploy-1", deploy.ID)
	assert.Equal(t, []string{"abc123"}, deploy.Required)
}

func TestUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/deploys/deploy-1/files/index.html", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := testClient(srv).UploadFile(t.Context(), "deploy-1", "/index.html", []byte("<html></html>"))
	require.NoError(t, err)
}

func TestDeleteSiteTolerates404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv).DeleteSite(t.Context(), "gone"))
}

func TestUpstreamErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := testClient(srv).GetSite(t.Context(), "site-1")
	require.Error(t, err)
	var upstream errs.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "hosting", upstream.Service)
	assert.Contains(t, upstream.Error(), "500")
}
