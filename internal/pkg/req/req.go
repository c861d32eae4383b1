/*
Package req provides helpers for parsing HTTP request input.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"footchat/internal/pkg/errs"
)

// BindJSON decodes the JSON request body into dst, rejecting unknown fields
// and trailing content.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// IntQuery reads an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func IntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return value
}

// Int64Param parses a chi URL parameter as a positive int64 id.
func Int64Param(raw string) (int64, *errs.CustomError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}
	return id, nil
}
