package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 * 1024

// Request is the *http.Request handed to a Handler.
type Request struct {
	*http.Request
}

// GetParam returns the named path parameter.
func (r *Request) GetParam(name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// GetQuery returns the first value of a query parameter without surrounding spaces.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt reads an integer query parameter; absent means 0.
func (r *Request) GetQueryInt(key string) (int, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return n, nil
}

// DecodeBody reads exactly one JSON value into dst. Unknown fields, trailing
// data and bodies over maxBodyBytes are rejected as an invalid format.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormatWrap(err, "Invalid request body")
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}
	return nil
}
