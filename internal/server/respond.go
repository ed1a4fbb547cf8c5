package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/proofgraph/proofgraph/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// codeStatus maps error codes to HTTP status codes. Codes not listed map
// to 500.
var codeStatus = map[errors.Code]int{
	errors.ErrCodeInvalidInput:  http.StatusBadRequest,
	errors.ErrCodeInvalidGraph:  http.StatusBadRequest,
	errors.ErrCodeInvalidNode:   http.StatusBadRequest,
	errors.ErrCodeInvalidEdge:   http.StatusBadRequest,
	errors.ErrCodeInvalidFormat: http.StatusBadRequest,
	errors.ErrCodeInvalidPath:   http.StatusBadRequest,
	errors.ErrCodeEdgeCycle:     http.StatusConflict,
	errors.ErrCodeNotFound:      http.StatusNotFound,
	errors.ErrCodeNodeNotFound:  http.StatusNotFound,
	errors.ErrCodeEdgeNotFound:  http.StatusNotFound,
	errors.ErrCodeGraphNotFound: http.StatusNotFound,
	errors.ErrCodeStorage:       http.StatusBadGateway,
	errors.ErrCodeUnsupported:   http.StatusBadRequest,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= 500 {
		logger.Error("request failed", "code", code, "err", err)
	} else {
		logger.Debug("request rejected", "code", code, "err", err)
	}

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
