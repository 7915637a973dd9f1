package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/nutri-api/pkg/errors"
)

// Response wraps every gateway result and API response
type Response[T any] struct {
	Data       *T     `json:"data"`
	Error      *Error `json:"error"`
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
}

// Error represents API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OK reports whether the response carries no error
func (r Response[T]) OK() bool {
	return r.Error == nil
}

// Value returns the payload, or the zero value when there is none
func (r Response[T]) Value() T {
	if r.Data == nil {
		var zero T
		return zero
	}
	return *r.Data
}

// Err returns the failure as an *errors.AppError, nil on success
func (r Response[T]) Err() *errors.AppError {
	if r.Error == nil {
		return nil
	}
	return &errors.AppError{
		Code:    r.Error.Code,
		Message: r.Error.Message,
		Details: r.Error.Details,
		Status:  r.Status,
	}
}

func withStatus[T any](data *T, status int) Response[T] {
	return Response[T]{
		Data:       data,
		Status:     status,
		StatusText: errors.StatusText(status),
	}
}

func Success[T any](data T) Response[T] {
	return withStatus(&data, http.StatusOK)
}

func Created[T any](data T) Response[T] {
	return withStatus(&data, http.StatusCreated)
}

// Maybe wraps an optional single row. A nil data is still a success.
func Maybe[T any](data *T) Response[T] {
	return withStatus(data, http.StatusOK)
}

func NoContent[T any]() Response[T] {
	return withStatus[T](nil, http.StatusNoContent)
}

// ErrorResponse builds a failed response with an explicit code and status
func ErrorResponse[T any](code, message string, status int) Response[T] {
	resp := withStatus[T](nil, status)
	resp.Error = &Error{Code: code, Message: message}
	return resp
}

func BadRequest[T any](message string) Response[T] {
	return Fail[T](errors.BadRequest(message))
}

func Unauthorized[T any]() Response[T] {
	return Fail[T](errors.Unauthorized())
}

func NotFound[T any](resource string) Response[T] {
	return Fail[T](errors.NotFound(resource))
}

// Fail converts err into a failed response. Errors that are not AppErrors
// become UNKNOWN_ERROR with status 500.
func Fail[T any](err error) Response[T] {
	appErr, ok := errors.As(err)
	if !ok {
		message := "An unknown error occurred"
		if err != nil {
			message = err.Error()
		}
		appErr = errors.New(errors.CodeUnknown, message, http.StatusInternalServerError)
	}
	resp := withStatus[T](nil, appErr.Status)
	resp.Error = &Error{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	return resp
}

// Forward re-types a response, keeping status and error but dropping data.
// It is meant for propagating failures between gateways of different types.
func Forward[U, T any](r Response[T]) Response[U] {
	return Response[U]{
		Error:      r.Error,
		Status:     r.Status,
		StatusText: r.StatusText,
	}
}

// Write renders resp as JSON using its status
func Write[T any](c *gin.Context, resp Response[T]) {
	if resp.Status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(resp.Status, resp)
}

// Abort renders err as a failed envelope and stops the handler chain
func Abort(c *gin.Context, err error) {
	resp := Fail[any](err)
	c.AbortWithStatusJSON(resp.Status, resp)
}
