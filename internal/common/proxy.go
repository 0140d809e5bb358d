package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	OK                     int = 200
	ACCEPTED               int = 202
	BAD_REQUEST            int = 400
	UNAUTHORIZED           int = 401
	FORBIDDEN              int = 403
	DATA_NOT_FOUND         int = 404
	METHOD_NOT_ALLOWED     int = 405
	UNSUPPORTED_MEDIA_TYPE int = 415
	RATE_LIMIT_EXCEEDED    int = 429
	INTERNAL_SERVER_ERROR  int = 500
	BAD_GATEWAY            int = 502
	SERVICE_UNAVAILABLE    int = 503
	GATEWAY_TIMEOUT        int = 504
)

var messages = map[int]string{
	OK:                     "OK",
	ACCEPTED:               "Accepted",
	BAD_REQUEST:            "Bad request",
	UNAUTHORIZED:           "Unauthorized",
	FORBIDDEN:              "Forbidden",
	DATA_NOT_FOUND:         "Data not found",
	METHOD_NOT_ALLOWED:     "Method not allowed",
	UNSUPPORTED_MEDIA_TYPE: "Unsupported media type",
	RATE_LIMIT_EXCEEDED:    "Rate limit exceeded",
	INTERNAL_SERVER_ERROR:  "Internal server error",
	BAD_GATEWAY:            "Bad gateway",
	SERVICE_UNAVAILABLE:    "Service unavailable",
	GATEWAY_TIMEOUT:        "Gateway timeout",
}

// Human readable text for a status code
func StatusMessage(statusCode int) string {
	if message, ok := messages[statusCode]; ok {
		return message
	}
	return fmt.Sprintf("Status %d", statusCode)
}

// What came back from the server
type Reply struct {
	StatusCode int
	Body       []byte
}

type Proxy struct {
	header      map[string]string
	client      *http.Client
	rateLimiter *RateLimiter
}

func NewProxy(header map[string]string, timeout time.Duration, rateLimiter *RateLimiter) *Proxy {
	return &Proxy{header, &http.Client{Timeout: timeout}, rateLimiter}
}

// Make a GET request to the provided url.
// The request waits for the rate limiter before being sent. Any status code
// is returned to the caller, which decides what it means
func (proxy *Proxy) Request(ctx context.Context, url string) (Reply, error) {

	// ask for permission to execute the request
	// and wait if necessary
	if err := proxy.rateLimiter.Wait(ctx); err != nil {
		return Reply{}, fmt.Errorf("rate limiter did not allow the request: %w", err)
	}

	// Create the request and add the header
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Reply{}, fmt.Errorf("could not create request for url %s: %w", url, err)
	}
	for key, value := range proxy.header {
		request.Header.Set(key, value)
	}

	// Perform the request
	res, err := proxy.client.Do(request)
	if err != nil {
		return Reply{}, fmt.Errorf("could not perform request: %w", err)
	}
	defer res.Body.Close()

	// Check if the status of the request is understood
	message, ok := messages[res.StatusCode]
	if !ok {
		log.Warn().Msg(fmt.Sprintf("Status code of request (%d) is not understood", res.StatusCode))
	} else {
		log.Debug().Msg(fmt.Sprintf("%d %s", res.StatusCode, message))
	}

	if res.StatusCode == RATE_LIMIT_EXCEEDED {
		proxy.rateLimiter.ReceivedRateLimit()
	}

	// Read the response
	stream, err := io.ReadAll(res.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("could not extract the response for url %s: %w", url, err)
	}
	return Reply{StatusCode: res.StatusCode, Body: stream}, nil
}
