package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "campaignlens/internal/errors"
	"campaignlens/internal/services"
	"campaignlens/internal/validation"
	"campaignlens/pkg/contracts/domain"
)

const sampleCSV = `Campaign ID,Campaign Name,Subject,Send Time,Open Rate
abc123,Wednesday Newsletter,Midweek update,2024-03-06 09:00:00,45.50%
def456,Friday Flash Sale,Weekend deals,2024-03-08 17:30:00,38.25%
ghi789,Monthly Digest,March roundup,2024-03-01 08:00:00,51.00%
`

func newTestHandler() *DashboardHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewDashboardService(logger, nil, nil)
	fv := validation.NewFileValidator(logger, []string{".csv", ".xlsx"}, 1<<20)
	eh := apierrors.NewErrorHandler(logger, false)
	return NewDashboardHandler(svc, fv, logger, eh)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUpload_Multipart(t *testing.T) {
	h := newTestHandler()
	body, contentType := multipartBody(t, "campaigns.csv", sampleCSV)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Rows, 3)
	assert.Equal(t, "All", resp.Group)
	assert.Nil(t, resp.Stats)
	assert.NotEmpty(t, resp.Summary)
	assert.NotEmpty(t, resp.Charts.Bar.Categories)
	assert.Equal(t, "abc123", resp.Rows[0].CampaignID)
	assert.Equal(t, "https://www.klaviyo.com/campaign/abc123/reports/overview", resp.Rows[0].CampaignURL)
}

func TestUpload_RawBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
}

func TestUpload_GroupFilter(t *testing.T) {
	h := newTestHandler()

	target := "/?group=" + url.QueryEscape("Friday Campaign")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, domain.GroupFriday, resp.Rows[0].Group)
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 1, resp.Stats.Count)
	assert.InDelta(t, 0.3825, resp.Stats.Mean, 1e-9)
	// summary and charts still cover the whole dataset
	assert.NotEmpty(t, resp.Summary)
}

func TestUpload_UnknownGroup(t *testing.T) {
	h := newTestHandler()

	target := "/?group=" + url.QueryEscape("Saturday Campaign")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "group-not-found")
}

func TestUpload_MissingFilePart(t *testing.T) {
	h := newTestHandler()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.WriteField("other", "value"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	h := newTestHandler()
	body, contentType := multipartBody(t, "campaigns.pdf", sampleCSV)

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUpload_FieldFormatErrorIs422(t *testing.T) {
	h := newTestHandler()

	bad := "Campaign ID,Campaign Name,Subject,Send Time,Open Rate\n" +
		"abc123,Wednesday Newsletter,Midweek update,2024-03-06 09:00:00,45.50%\n" +
		"def456,Friday Flash Sale,Weekend deals,2024-03-08 17:30:00,not-a-rate\n"

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(bad))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Open Rate", problem["field"])
	assert.Equal(t, float64(3), problem["row"])
	assert.Equal(t, "not-a-rate", problem["value"])
}

func TestUpload_MissingColumnsIs422(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("Campaign ID,Subject\nabc,x\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_columns")
}

func TestUpload_EmptyDatasetIs422(t *testing.T) {
	h := newTestHandler()

	headerOnly := "Campaign ID,Campaign Name,Subject,Send Time,Open Rate\n"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(headerOnly))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty-dataset")
}

func TestGetGroups(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	rec := httptest.NewRecorder()
	h.GetGroups(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GroupsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.AllGroups(), resp.Groups)
}
