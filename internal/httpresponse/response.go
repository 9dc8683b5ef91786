package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	errs "goban/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"status\": 500,\"body\":{\"error\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

// WriteError answers with the status StatusFor picks for err. Errors outside
// the known set are reported without details.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	description := err.Error()
	if status == http.StatusInternalServerError {
		description = errs.ErrInternal.Error()
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: description})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound), errors.Is(err, errs.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPlayerNotInGame):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrGameFull),
		errors.Is(err, errs.ErrGameInProgress),
		errors.Is(err, errs.ErrClientOutOfSync),
		errors.Is(err, errs.ErrPlayerOutOfTurn),
		errors.Is(err, errs.ErrGameNotStarted):
		return http.StatusConflict
	case errors.Is(err, errs.ErrOccupiedPosition),
		errors.Is(err, errs.ErrSuicide),
		errors.Is(err, errs.ErrRepeatedPosition),
		errors.Is(err, errs.ErrIllegalCoordinate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	marshal, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
