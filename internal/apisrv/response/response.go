// Package response renders API errors and decodes request bodies.
package response

import (
	"log/slog"
	"net/http"

	gerr "github.com/apexhome/products-manager/internal/errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	Field      string `json:"field,omitempty"` // failing request field
	ErrorText  string `json:"error,omitempty"` // application-level error message
	Retryable  bool   `json:"retryable,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// Err maps err onto its status. Details of internal errors are not exposed.
func Err(err error) *ErrResponse {
	status := gerr.HTTPStatus(err)
	resp := &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Field:          gerr.Field(err),
		ErrorText:      err.Error(),
		Retryable:      gerr.Retryable(err),
	}
	if status == http.StatusInternalServerError {
		resp.ErrorText = ""
	}
	return resp
}

// Error logs server side failures and renders err.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	resp := Err(err)
	if resp.HTTPStatusCode >= http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("err", err.Error()),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	_ = render.Render(w, r, resp)
}

// Decode reads a JSON body into v and validates it when v knows how.
func Decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return gerr.InvalidInput("body", "can't decode request: %v", err)
	}
	if vv, ok := v.(interface{ Validate() error }); ok {
		return vv.Validate()
	}
	return nil
}

// OK renders v as JSON with status.
func OK(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
