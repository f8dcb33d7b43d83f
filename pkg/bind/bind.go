// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vendora/config"
	"vendora/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 4 MB).
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20 // 4 MB
	}
	return n
}

// maxUploadBytes returns the multipart upload limit (default 16 MB).
func maxUploadBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil || n <= 0 {
		return 16 << 20 // 16 MB
	}
	return n
}

// JSON decodes r.Body as JSON into dest and runs validation.
// The body is capped at MAX_BODY_BYTES (default 4 MB).
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	dec := json.NewDecoder(r.Body)
	if err = dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}

// Multipart parses a multipart form, capped at MAX_UPLOAD_BYTES.
// Field values are read with r.FormValue afterwards; this only performs the
// size-limited parse so handlers don't repeat the boilerplate.
func Multipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadBytes()); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}
