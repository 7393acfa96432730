package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/datastore"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/rs/zerolog"
)

// InstagramNotifier publishes a recorded change event through the Instagram
// Graph API: create a media container, wait for it to finish processing,
// publish it, then mark the event record as posted. A failed publish leaves
// the event record untouched so a later invocation can retry from the same
// event.
type InstagramNotifier struct {
	cfg        config.NotificationConfig
	events     *datastore.EventStore
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewInstagramNotifier creates a notifier over the event store.
func NewInstagramNotifier(cfg config.NotificationConfig, events *datastore.EventStore, logger zerolog.Logger) *InstagramNotifier {
	return &InstagramNotifier{
		cfg:        cfg,
		events:     events,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With().Str("component", "InstagramNotifier").Logger(),
	}
}

// PublishLatest finds the newest unpublished event record and drives it
// through the publishing workflow. Missing credentials, no pending event,
// or an event still waiting for its screenshot are all quiet no-ops.
func (in *InstagramNotifier) PublishLatest(ctx context.Context) error {
	if in.cfg.AccessToken == "" || in.cfg.BusinessAccountID == "" {
		in.logger.Info().Msg("Instagram credentials not configured, skipping publish")
		return nil
	}

	event, ok := in.events.LatestUnpublished()
	if !ok {
		in.logger.Info().Msg("No unpublished event records")
		return nil
	}
	if event.ScreenshotPath == "" {
		in.logger.Info().Str("key", event.Key).Msg("Event has no screenshot yet, skipping publish")
		return nil
	}

	caption := event.Caption
	if caption == "" {
		caption = buildCaption(event)
	}

	containerID, err := in.createContainer(ctx, event.ScreenshotPath, caption)
	if err != nil {
		return errorutil.WrapError(err, "failed to create media container")
	}

	if err := in.waitForContainer(ctx, containerID); err != nil {
		return errorutil.WrapErrorf(err, "media container %s did not finish processing", containerID)
	}

	postID, err := in.publishContainer(ctx, containerID)
	if err != nil {
		return errorutil.WrapError(err, "failed to publish media container")
	}

	event.Caption = caption
	event.InstagramPosted = true
	event.InstagramPostID = postID
	if err := in.events.Write(event); err != nil {
		return errorutil.WrapError(err, "published but failed to update event record")
	}

	in.logger.Info().Str("key", event.Key).Str("post_id", postID).Msg("Event published")
	return nil
}

func (in *InstagramNotifier) createContainer(ctx context.Context, imageURL, caption string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", in.cfg.GraphAPIBaseURL, in.cfg.BusinessAccountID)
	params := url.Values{
		"image_url":    {imageURL},
		"caption":      {caption},
		"access_token": {in.cfg.AccessToken},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := in.postForm(ctx, endpoint, params, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errorutil.NewError("media endpoint returned no container id")
	}
	return resp.ID, nil
}

// waitForContainer polls the container's processing status until it reports
// FINISHED, failing the invocation if the configured wall-clock ceiling is
// exceeded.
func (in *InstagramNotifier) waitForContainer(ctx context.Context, containerID string) error {
	deadline := time.Now().Add(time.Duration(in.cfg.PublishTimeoutSecs) * time.Second)

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = time.Duration(in.cfg.PollIntervalSecs) * time.Second
	backoffCfg.MaxInterval = 30 * time.Second

	for {
		status, err := in.containerStatus(ctx, containerID)
		if err != nil {
			return err
		}
		switch status {
		case "FINISHED":
			return nil
		case "ERROR", "EXPIRED":
			return errorutil.NewError("container processing ended with status %s", status)
		}

		sleep := backoffCfg.NextBackOff()
		if sleep == backoff.Stop || time.Now().Add(sleep).After(deadline) {
			return errorutil.ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}

func (in *InstagramNotifier) containerStatus(ctx context.Context, containerID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s",
		in.cfg.GraphAPIBaseURL, containerID, url.QueryEscape(in.cfg.AccessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errorutil.WrapError(err, "failed to build status request")
	}
	resp, err := in.httpClient.Do(req)
	if err != nil {
		return "", errorutil.WrapError(err, "status request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", errorutil.NewError("status endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		StatusCode string `json:"status_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errorutil.WrapError(err, "failed to decode status response")
	}
	return payload.StatusCode, nil
}

func (in *InstagramNotifier) publishContainer(ctx context.Context, containerID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", in.cfg.GraphAPIBaseURL, in.cfg.BusinessAccountID)
	params := url.Values{
		"creation_id":  {containerID},
		"access_token": {in.cfg.AccessToken},
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := in.postForm(ctx, endpoint, params, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errorutil.NewError("publish endpoint returned no post id")
	}
	return resp.ID, nil
}

func (in *InstagramNotifier) postForm(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return errorutil.WrapError(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := in.httpClient.Do(req)
	if err != nil {
		return errorutil.WrapError(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorutil.WrapError(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorutil.NewError("endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
