// Package handler holds the request plumbing shared by the resource handlers
package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/nutri-api/pkg/errors"
	"github.com/jwalitptl/nutri-api/pkg/httputil"
)

// BindJSON decodes the request body into a new T. On failure it writes a
// BAD_REQUEST envelope and returns false.
func BindJSON[T any](c *gin.Context) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		message := "Invalid request body"
		if errors.Is(err, io.EOF) {
			message = "Request body is required"
		}
		Fail(c, apperrors.BadRequest(message).WithDetails(err.Error()))
		return nil, false
	}
	return &req, true
}

// PathID parses the named path parameter as a UUID. On failure it writes a
// BAD_REQUEST envelope and returns false.
func PathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		Fail(c, apperrors.BadRequest("Invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

// QueryInt reads an optional integer query parameter
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		Fail(c, apperrors.BadRequest(name+" must be an integer"))
		return 0, false
	}
	return n, true
}

// Respond writes resp with its own status
func Respond[T any](c *gin.Context, resp httputil.Response[T]) {
	httputil.Write(c, resp)
}

// Fail writes err as a failed envelope
func Fail(c *gin.Context, err error) {
	httputil.Write(c, httputil.Fail[any](err))
}
