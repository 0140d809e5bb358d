package bggapi

import (
	"bluebgg/internal/common"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// BGG schema
const BGG_SCHEMA = "https://boardgamegeek.com"

// Routes inside the BGG XML API
const ROUTE_COLLECTION = "/xmlapi2/collection"

const (
	DefaultMaxRetries = 5
	DefaultRetryDelay = 2 * time.Second
	DefaultTimeout    = 30 * time.Second
)

type BggApi struct {
	baseUrl    string
	proxy      *common.Proxy
	maxRetries int
	retryDelay time.Duration
}

type Settings struct {
	BaseUrl      string
	Token        string
	MaxRetries   int
	RetryDelay   time.Duration
	Timeout      time.Duration
	Restrictions []common.Restriction
}

func NewBggApi(settings Settings) (*BggApi, error) {

	var bggapi BggApi

	bggapi.baseUrl = strings.TrimRight(settings.BaseUrl, "/")
	if bggapi.baseUrl == "" {
		bggapi.baseUrl = BGG_SCHEMA
	}
	bggapi.maxRetries = settings.MaxRetries
	if bggapi.maxRetries < 0 {
		return nil, fmt.Errorf("max retries cannot be negative, got %d", settings.MaxRetries)
	}
	bggapi.retryDelay = settings.RetryDelay
	if bggapi.retryDelay <= 0 {
		bggapi.retryDelay = DefaultRetryDelay
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	header := map[string]string{"Accept": "application/xml"}
	if settings.Token != "" {
		header["Authorization"] = "Bearer " + settings.Token
	}
	rateLimiter, err := common.NewRateLimiter(settings.Restrictions, common.DefaultRateLimitBackoff)
	if err != nil {
		return nil, fmt.Errorf("could not create rate limiter: %w", err)
	}
	bggapi.proxy = common.NewProxy(header, timeout, rateLimiter)

	return &bggapi, nil
}

// Get the collection of a user, filtered on the server side by params.
// BGG queues collection requests and answers 202 until the data is ready,
// so the request is repeated with a growing delay until it is
func (bggapi *BggApi) GetCollectionBrief(ctx context.Context, username Username, params CollectionQueryParams) (Collection, error) {

	url := bggapi.baseUrl + ROUTE_COLLECTION + "?" + params.Encode(username)

	attempts := 0
	request := func() (Collection, error) {
		attempts++
		log.Debug().Msg(fmt.Sprintf("Requesting to url %s", url))
		reply, err := bggapi.proxy.Request(ctx, url)
		if err != nil {
			return Collection{}, backoff.Permanent(fmt.Errorf("could not request collection of user %s: %w", username, err))
		}

		switch reply.StatusCode {
		case common.OK:
			collection, err := UnmarshalCollection(reply.Body)
			if err != nil {
				return Collection{}, backoff.Permanent(err)
			}
			log.Debug().Msg(fmt.Sprintf("Found %d items in collection of user %s", len(collection.Items), username))
			return collection, nil
		case common.ACCEPTED, common.RATE_LIMIT_EXCEEDED:
			return Collection{}, &notReadyError{statusCode: reply.StatusCode}
		default:
			return Collection{}, backoff.Permanent(&StatusError{StatusCode: reply.StatusCode})
		}
	}
	notify := func(err error, delay time.Duration) {
		log.Info().Msg(fmt.Sprintf("Collection of user %s not ready (%s), retrying in %s", username, err, delay))
	}

	collection, err := backoff.RetryNotifyWithData[Collection](request, bggapi.retryPolicy(ctx), notify)
	var notReady *notReadyError
	if errors.As(err, &notReady) {
		return Collection{}, &MaxRetryError{Retries: attempts - 1}
	}
	return collection, err
}

// Delay doubling from retryDelay on every retry, up to maxRetries retries.
// Stops waiting as soon as the context is done
func (bggapi *BggApi) retryPolicy(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = bggapi.retryDelay
	exponential.Multiplier = 2
	exponential.RandomizationFactor = 0
	exponential.MaxInterval = time.Duration(math.MaxInt64)
	exponential.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(bggapi.maxRetries)), ctx)
}

// BGG queued the request or asked us to slow down. Worth retrying
type notReadyError struct {
	statusCode int
}

func (e *notReadyError) Error() string {
	return common.StatusMessage(e.statusCode)
}
