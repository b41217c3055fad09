package handler

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/objectdoc/internal/logger"
	"github.com/locvowork/objectdoc/internal/selector"
	"github.com/locvowork/objectdoc/internal/service"
	"github.com/locvowork/objectdoc/internal/service/serviceutils"
	"github.com/locvowork/objectdoc/internal/sfclient"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DocumentHandler struct {
	svc service.DocumentService
}

func NewDocumentHandler(svc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

type GenerateRequest struct {
	Objects []string `json:"objects"`
}

type GenerateResponse struct {
	Documents []GeneratedFile `json:"documents"`
	Failures  []FailedObject  `json:"failures"`
}

type GeneratedFile struct {
	Object     string `json:"object"`
	Path       string `json:"path"`
	FieldCount int    `json:"field_count"`
}

type FailedObject struct {
	Object string `json:"object"`
	Error  string `json:"error"`
}

// ListObjectsHandler handles GET /objects?kind=custom&q=inv
func (h *DocumentHandler) ListObjectsHandler(c echo.Context) error {
	kind, err := selector.ParseKind(c.QueryParam("kind"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid kind", err)
	}
	objects, err := h.svc.ListObjects(c.Request().Context(), kind, c.QueryParam("q"))
	if err != nil {
		return serviceutils.ResponseError(c, statusFor(err), "Failed to list objects", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Objects retrieved successfully", objects)
}

// GenerateHandler handles POST /documents. Partial failures still answer
// 200 with the failed objects listed; a batch where nothing was written
// answers 502.
func (h *DocumentHandler) GenerateHandler(c echo.Context) error {
	ctx := c.Request().Context()
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}

	result, err := h.svc.Generate(ctx, req.Objects)
	if err != nil {
		if errors.Is(err, service.ErrNoObjects) {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "No objects requested", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate documents", err)
	}

	resp := GenerateResponse{Documents: []GeneratedFile{}, Failures: []FailedObject{}}
	for _, d := range result.Documents {
		resp.Documents = append(resp.Documents, GeneratedFile{Object: d.Object, Path: d.Path, FieldCount: d.FieldCount})
	}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, FailedObject{Object: f.Object, Error: f.Err.Error()})
	}

	if len(resp.Documents) == 0 {
		logger.ErrorLog(ctx, "no documents generated for %v", req.Objects)
		return serviceutils.ResponseErrorWithData(c, http.StatusBadGateway, "No documents generated",
			fmt.Errorf("%d objects failed", len(resp.Failures)), resp)
	}
	msg := "Documents generated successfully"
	if len(resp.Failures) > 0 {
		msg = fmt.Sprintf("Generated %d documents, %d failed", len(resp.Documents), len(resp.Failures))
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, msg, resp)
}

// DownloadHandler handles GET /documents/:object/download
func (h *DocumentHandler) DownloadHandler(c echo.Context) error {
	object := c.Param("object")
	name, data, err := h.svc.Render(c.Request().Context(), object)
	if err != nil {
		if errors.Is(err, service.ErrNoObjects) {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Object name is required", err)
		}
		return serviceutils.ResponseError(c, statusFor(err), "Failed to generate document", err)
	}

	c.Response().Header().Set("Content-Type", xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(data)))
	c.Response().WriteHeader(http.StatusOK)

	_, err = c.Response().Write(data)
	return err
}

// HistoryHandler handles GET /documents/history?limit=20
func (h *DocumentHandler) HistoryHandler(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid limit", fmt.Errorf("limit %q", v))
		}
		limit = n
	}
	docs, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to load history", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "History retrieved successfully", docs)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sfclient.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sfclient.ErrAuthentication):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
