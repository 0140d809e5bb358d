package bggapi

import (
	"bluebgg/internal/common"
	"errors"
	"fmt"
)

// The username does not exist in BGG
var ErrUnknownUsername = errors.New("unknown username")

// BGG kept answering that the data is not ready yet
type MaxRetryError struct {
	Retries int
}

func (e *MaxRetryError) Error() string {
	return fmt.Sprintf("data not ready after %d retries", e.Retries)
}

// BGG answered with an error message inside the document
type ApiError struct {
	Message string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("bgg api error: %s", e.Message)
}

// BGG answered with a status code we don't handle
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d (%s)", e.StatusCode, common.StatusMessage(e.StatusCode))
}
