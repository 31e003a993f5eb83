package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignlens/internal/dataprocessing"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.Default(), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_FieldFormatError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", nil)

	err := fmt.Errorf("run pipeline: %w", &dataprocessing.FieldFormatError{
		Field: "Open Rate",
		Row:   3,
		Value: "abc",
		Err:   errors.New("missing % suffix"),
	})
	h.HandleError(rec, req, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeProblem(t, rec)
	assert.Equal(t, "/errors/upload/field-format", body["type"])
	assert.Equal(t, "Open Rate", body["field"])
	assert.Equal(t, float64(3), body["row"])
	assert.Equal(t, "abc", body["value"])
}

func TestHandleError_MalformedInputError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard", nil)

	h.HandleError(rec, req, &dataprocessing.MalformedInputError{
		Reason:  "required columns are absent",
		Missing: []string{"Open Rate"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeProblem(t, rec)
	assert.Equal(t, "/errors/upload/malformed-input", body["type"])
	assert.Equal(t, []interface{}{"Open Rate"}, body["missing_columns"])
}

func TestHandleError_APIError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/groups", nil)

	h.HandleError(rec, req, ErrGroupNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "/errors/dashboard/group-not-found", body["type"])
	assert.Equal(t, "GROUP_NOT_FOUND", body["error_code"])
}

func TestHandleError_UnknownError(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, req, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "/errors/internal", body["type"])
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	problem := NewProblemDetails(422, TypeFieldFormat, "Field Format Error", "detail", "/api/dashboard").
		WithExtension("row", 7)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(7), body["row"])
	assert.Equal(t, float64(422), body["status"])
}
