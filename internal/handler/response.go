package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-order-console/internal/model"
	"go-order-console/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrOrderNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Order not found"
	} else if errors.Is(err, model.ErrTrashItemNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Order not found in trash"
	} else if errors.Is(err, model.ErrNoIDsProvided) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "No ids provided"
	} else if errors.Is(err, model.ErrInvalidExportFormat) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid export format"
	} else if errors.Is(err, model.ErrUnknownExportField) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Unknown export field"
	} else if errors.Is(err, model.ErrScanBlocked) {
		status = http.StatusConflict
		body.Code = "CONFLICT"
		body.Message = "Automatic scan is running. Disable it to use manual scan."
	} else if errors.Is(err, model.ErrBackendUnavailable) {
		status = http.StatusBadGateway
		body.Code = "BACKEND_UNAVAILABLE"
		body.Message = "The scanning backend did not respond"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrBackendRejected) {
		status = http.StatusBadGateway
		body.Code = "BACKEND_REJECTED"
		body.Message = "The scanning backend rejected the request"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return apierror.BadRequest("invalid JSON body", err.Error())
	}
	return nil
}
