// client.go contains the http side of scraping, everything past the point of
// having a parsed document lives in extract.go and methods.go.

package rubydoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"rdoc-scraper/internal/components/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ErrHttpStatus is returned when a page responds with a non-success status.
var ErrHttpStatus = errors.New("unexpected http status")

// default user agent, the same "Mac Safari" identity the docs site has always been scraped with
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_9_2) AppleWebKit/537.75.14 (KHTML, like Gecko) Version/7.0.3 Safari/537.75.14"

type ClientOptions struct {
	UserAgent string
	// zero means no timeout
	Timeout time.Duration
	// zero means no rate limit
	RequestsPerSecond float64
	// optional, used to hook extra instrumentation onto the http client
	Instrument func(client *resty.Client)
}

type client struct {
	http *resty.Client
	tel  telemetry.API
}

func newClient(opts ClientOptions, tel telemetry.API) *client {
	httpClient := resty.New()
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}

	if opts.RequestsPerSecond > 0 {
		// burst of 1, requests are sequential anyways
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	if opts.Instrument != nil {
		opts.Instrument(httpClient)
	}

	return &client{
		http: httpClient,
		tel:  tel,
	}
}

// get fetches a page and parses it, non-success statuses are treated as failures.
func (c *client) get(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", link, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: %w: %s", link, ErrHttpStatus, res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", link, err)
	}
	return doc, nil
}
