// Package fetcher downloads every source payload of a run concurrently.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"crypto-rates-checker/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrBodyTooLarge = errors.New("response body too large")

type Options struct {
	Timeout        time.Duration
	MaxConcurrency int
	MaxBodyBytes   int64
}

type Fetcher struct {
	client    *http.Client
	options   Options
	logger    *zap.Logger
	rawLogger *zap.Logger
}

func New(client *http.Client, options Options, logger *zap.Logger, rawLogger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if options.Timeout <= 0 {
		options.Timeout = 10 * time.Second
	}
	if options.MaxConcurrency <= 0 {
		options.MaxConcurrency = 8
	}
	return &Fetcher{client: client, options: options, logger: logger, rawLogger: rawLogger}
}

// FetchAll requests every descriptor and waits for all of them. Each source
// gets one entry in the result; a failed source carries its error there and in
// the returned error log. When ctx is cancelled the result is nil and the log
// holds ctx.Err() only.
func (f *Fetcher) FetchAll(ctx context.Context, descriptors []domain.SourceDescriptor) (map[domain.SourceID]domain.RawResponse, []error) {
	results := make(chan domain.RawResponse, len(descriptors))

	g := new(errgroup.Group)
	g.SetLimit(f.options.MaxConcurrency)
	for _, descriptor := range descriptors {
		g.Go(func() error {
			results <- f.fetch(ctx, descriptor)
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		f.logger.Warn("fetch cancelled", zap.Error(err))
		return nil, []error{err}
	}

	responses := make(map[domain.SourceID]domain.RawResponse, len(descriptors))
	var errs []error
	for response := range results {
		responses[response.Source] = response
	}
	// error log follows descriptor order, not completion order
	for _, descriptor := range descriptors {
		if response := responses[descriptor.ID]; response.Err != nil {
			errs = append(errs, response.Err)
		}
	}
	return responses, errs
}

func (f *Fetcher) fetch(ctx context.Context, descriptor domain.SourceDescriptor) domain.RawResponse {
	response := domain.RawResponse{Source: descriptor.ID}
	start := time.Now()

	body, status, err := f.get(ctx, descriptor.URL)
	response.Body = body
	response.StatusCode = status
	if err != nil {
		response.Err = &domain.SourceFetchError{Source: descriptor.ID, StatusCode: status, Err: err}
		f.logger.Warn("fetch failed",
			zap.String("source", descriptor.ID.String()),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return response
	}

	f.logger.Debug("fetched",
		zap.String("source", descriptor.ID.String()),
		zap.Int("status", status),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	f.rawLogger.Debug("raw response",
		zap.String("source", descriptor.ID.String()),
		zap.String("url", descriptor.URL),
		zap.ByteString("body", body))
	return response
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.options.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status)
	}

	reader := io.Reader(resp.Body)
	if f.options.MaxBodyBytes > 0 {
		reader = io.LimitReader(resp.Body, f.options.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if f.options.MaxBodyBytes > 0 && int64(len(body)) > f.options.MaxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.options.MaxBodyBytes)
	}
	return body, resp.StatusCode, nil
}
