package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

type httpCloudStore struct {
	client *resty.Client
	logger *logger.Logger

	mu      sync.RWMutex
	token   string
	ownerID int64
}

// NewHTTPCloudStore constructs the resty-backed cloud store adapter. If
// cfg.Token is non-empty the owner id is parsed from it immediately;
// otherwise SetToken must be called before the first data call.
func NewHTTPCloudStore(cfg config.Cloud, log *logger.Logger) (CloudStore, error) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	h := &httpCloudStore{client: cli, logger: log}

	if cfg.Token != "" {
		if err := h.SetToken(cfg.Token); err != nil {
			return nil, fmt.Errorf("configure cloud token: %w", err)
		}
	}

	return h, nil
}

func (h *httpCloudStore) SetToken(token string) error {
	ownerID, err := parseOwnerIDFromJWT(strings.TrimSpace(token))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
	h.ownerID = ownerID
	return nil
}

func (h *httpCloudStore) OwnerID() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ownerID
}

func (h *httpCloudStore) Insert(ctx context.Context, record models.CloudRecord) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post("/api/entities/")
	if err != nil {
		return fmt.Errorf("%w: insert request: %s", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpCloudStore) Update(ctx context.Context, id string, record models.CloudRecord) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Put("/api/entities/" + id)
	if err != nil {
		return fmt.Errorf("%w: update request: %s", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpCloudStore) Select(ctx context.Context, filter models.CloudFilter) ([]models.CloudRecord, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(filter).
		Post("/api/entities/select")
	if err != nil {
		return nil, fmt.Errorf("%w: select request: %s", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.CloudRecord
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode select response: %w", err)
	}

	return records, nil
}

func (h *httpCloudStore) CountWhere(ctx context.Context, filter models.CloudFilter) (int64, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(filter).
		Post("/api/entities/count")
	if err != nil {
		return 0, fmt.Errorf("%w: count request: %s", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	var result struct {
		Count int64 `json:"count"`
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}

	return result.Count, nil
}

func (h *httpCloudStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()

	resp, err := h.authedRequest(ctx).Head("/api/health")
	if err != nil {
		return 0, fmt.Errorf("%w: ping request: %s", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return time.Since(start), nil
}

func (h *httpCloudStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)

	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode() >= http.StatusInternalServerError:
		// server-side failures are treated like transport: the request may
		// succeed on retry
		return fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode(), body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrRejected, resp.StatusCode(), body)
	}
}

func parseOwnerIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
