package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"dreamscape/application/services"
	"dreamscape/pkg/common"
	pkgerrors "dreamscape/pkg/errors"
)

// JournalHandler handles dream submission and graph retrieval
type JournalHandler struct {
	service      *services.JournalService
	validate     *validator.Validate
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(service *services.JournalService, logger *zap.Logger, maxBodyBytes int64) *JournalHandler {
	return &JournalHandler{
		service:      service,
		validate:     validator.New(),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// SubmitRequest is the POST /api/submit body
type SubmitRequest struct {
	Dream string `json:"dream" validate:"required"`
}

// SubmitResponse mirrors the original backend's submit response shape
type SubmitResponse struct {
	Status string      `json:"status"`
	Entry  interface{} `json:"entry"`
	Graph  interface{} `json:"graph"`
}

// Submit handles POST /api/submit
func (h *JournalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := common.ParseJSONBody(r, &req, h.maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest,
			"Invalid request format. Expected JSON.")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.ValidationError,
			"Dream text is required")
		return
	}

	result, err := h.service.Submit(r.Context(), req.Dream)
	if err != nil {
		h.logger.Error("Failed to submit dream", zap.Error(err))
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, SubmitResponse{
		Status: "success",
		Entry:  result.Entry,
		Graph:  result.Graph,
	})
}

// GetGraph handles GET /api/graph. The snapshot is returned directly in
// the {nodes, links} shape the viewer consumes.
func (h *JournalHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Graph(r.Context())
	if err != nil {
		h.logger.Error("Failed to load graph", zap.Error(err))
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *JournalHandler) respondServiceError(w http.ResponseWriter, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		code := common.StandardErrorCodes.InternalError
		if appErr.Type == pkgerrors.ErrorTypeValidation {
			code = common.StandardErrorCodes.ValidationError
		}
		common.RespondError(w, appErr.HTTPStatus, code, appErr.Message)
		return
	}

	common.RespondError(w, http.StatusInternalServerError,
		common.StandardErrorCodes.InternalError,
		"internal error")
}
