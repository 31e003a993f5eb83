package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"campaignlens/internal/dataprocessing"
	apierrors "campaignlens/internal/errors"
	"campaignlens/internal/middleware"
	"campaignlens/internal/services"
	"campaignlens/internal/validation"
	"campaignlens/pkg/contracts/domain"
)

// groupAll is the filter value meaning "no filter".
const groupAll = "All"

// DashboardHandler serves the upload-and-analyze endpoint and the group
// label listing.
type DashboardHandler struct {
	service       DashboardServiceInterface
	fileValidator *validation.FileValidator
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, fileValidator *validation.FileValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:       service,
		fileValidator: fileValidator,
		logger:        logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:  errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Get("/groups", h.GetGroups)

	return r
}

// DashboardResponse is the analysis result for one upload.
type DashboardResponse struct {
	Rows    []domain.CampaignRecord          `json:"rows"`
	Summary []domain.GroupSummary            `json:"summary"`
	Charts  domain.Charts                    `json:"charts"`
	Bounds  domain.OutlierBounds             `json:"bounds"`
	Count   int                              `json:"count"`
	Group   string                           `json:"group"`
	Stats   *dataprocessing.DescriptiveStats `json:"stats,omitempty"`
}

// Render implements render.Renderer.
func (resp *DashboardResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// Upload handles POST /api/dashboard. The body is either a multipart form
// with a "file" part or a raw CSV body; an optional "group" query parameter
// filters the returned rows after analysis.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	body, filename, err := h.extractUpload(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer body.Close()

	format, err := services.DetectFormat(filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrUnsupportedFormat)
		return
	}

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("request_id", reqID),
		slog.String("filename", filename),
		slog.String("format", string(format)),
	)

	dataset, err := h.service.Analyze(r.Context(), body, format)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	resp := &DashboardResponse{
		Rows:    dataset.Records,
		Summary: dataset.Summaries,
		Charts:  h.service.Charts(dataset),
		Bounds:  dataset.Bounds,
		Count:   len(dataset.Records),
		Group:   groupAll,
	}

	if group := r.URL.Query().Get("group"); group != "" && group != groupAll {
		rows, stats, err := h.service.FilterRows(dataset, domain.GroupLabel(group))
		if err != nil {
			h.errorHandler.HandleError(w, r, h.mapServiceError(err))
			return
		}
		resp.Rows = rows
		resp.Count = len(rows)
		resp.Group = group
		resp.Stats = &stats
	}

	render.Status(r, http.StatusOK)
	render.Render(w, r, resp)
}

// GroupsResponse lists the closed set of group labels.
type GroupsResponse struct {
	Groups []domain.GroupLabel `json:"groups"`
}

// Render implements render.Renderer.
func (resp *GroupsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// GetGroups handles GET /api/dashboard/groups.
func (h *DashboardHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	render.Render(w, r, &GroupsResponse{Groups: h.service.Groups()})
}

// extractUpload pulls the upload out of the request. Multipart requests must
// carry a "file" part; any other request is treated as a raw body named by
// the "filename" query parameter (defaulting to CSV).
func (h *DashboardHandler) extractUpload(r *http.Request) (io.ReadCloser, string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, "", apierrors.InvalidRequestWithError(err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", apierrors.ErrMissingFile
		}
		if err := h.validateUpload(header); err != nil {
			file.Close()
			return nil, "", err
		}
		return file, header.Filename, nil
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "upload.csv"
	}
	if err := h.fileValidator.ValidateUploadName(filename); err != nil {
		return nil, "", apierrors.NewWithDetails(
			http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT",
			"Upload must be a CSV or XLSX file", err.Error())
	}
	return r.Body, filename, nil
}

func (h *DashboardHandler) validateUpload(header *multipart.FileHeader) error {
	if err := h.fileValidator.ValidateUploadName(header.Filename); err != nil {
		return apierrors.NewWithDetails(
			http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT",
			"Upload must be a CSV or XLSX file", err.Error())
	}
	if err := h.fileValidator.ValidateUploadSize(header.Size); err != nil {
		return apierrors.ErrPayloadTooLarge
	}
	return nil
}

// mapServiceError translates service sentinels into API errors; pipeline
// errors pass through so the central handler can attach their extensions.
func (h *DashboardHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyDataset):
		return apierrors.New(http.StatusUnprocessableEntity, "EMPTY_DATASET",
			"The uploaded file contains no campaign rows")
	case errors.Is(err, services.ErrUnknownGroup):
		return apierrors.ErrGroupNotFound
	case errors.Is(err, services.ErrUnsupportedFormat):
		return apierrors.ErrUnsupportedFormat
	default:
		return err
	}
}
