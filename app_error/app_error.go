package app_error

import (
	"errors"
	"net/http"

	"matchday/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Kind string

const (
	NotAuthenticated   Kind = "NOT_AUTHENTICATED"
	NotAuthorized      Kind = "NOT_AUTHORIZED"
	InvalidInput       Kind = "INVALID_INPUT"
	PreconditionFailed Kind = "PRECONDITION_FAILED"
	NotFound           Kind = "NOT_FOUND"
)

var kindStatus = map[Kind]int{
	NotAuthenticated:   http.StatusUnauthorized,
	NotAuthorized:      http.StatusForbidden,
	InvalidInput:       http.StatusBadRequest,
	PreconditionFailed: http.StatusConflict,
	NotFound:           http.StatusNotFound,
}

// Error is a failure the caller can act on. Code is the machine readable
// reason, Kind the category it belongs to.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	err     error
}

func New(kind Kind, code string, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is matches any Error with the same code, so wrapped copies still match the sentinel.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Wrap returns a copy of e that carries cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, err: cause}
}

func (e *Error) HTTPStatus() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Respond writes err in the shared error body and aborts the request.
// Errors that are not an *Error become 500 unless they are a missing row.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			appErr = New(NotFound, "NOT_FOUND", "not found")
		} else {
			logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
			WithHTTPStatus(c, errors.New("internal server error"), http.StatusInternalServerError)
			c.Abort()
			return
		}
	}
	metrics.RejectionsTotal.WithLabelValues(appErr.Code).Inc()
	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{
		"error": appErr.Error(),
		"code":  appErr.Code,
		"kind":  appErr.Kind,
	})
}
