package httpsource

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
)

var (
	snapshotPath = "/v1/dashboard/snapshot"
	partialPath  = "/v1/dashboard/snapshot/partial"

	// user-facing messages; the wrapped cause stays in the logs
	msgUnavailable = "Could not load your dashboard. Please try again."
	msgBadPayload  = "Dashboard data is temporarily unavailable."

	nowFunc = time.Now // mocked in tests
)

// service fetches snapshots for one dashboard user; a Store and its source
// adapter share the same lifetime.
type service struct {
	client    *http.Client
	baseURL   string
	userID    string
	appName   string
	secretKey []byte
	tokenTTL  time.Duration
	logger    core.Logger
}

var _ dashboard.Source = (*service)(nil)

func NewService(conf *core.Config, userID string, logger core.Logger) dashboard.Source {
	return &service{
		client:    &http.Client{Timeout: conf.Source.Timeout},
		baseURL:   conf.Source.BaseURL,
		userID:    userID,
		appName:   conf.AppName,
		secretKey: []byte(conf.SecretKey),
		tokenTTL:  conf.Source.TokenLifetime,
		logger:    logger,
	}
}

func (svc *service) FetchAll(ctx context.Context) (dashboard.Snapshot, error) {
	var snap dashboard.Snapshot
	if err := svc.get(ctx, snapshotPath, &snap); err != nil {
		return dashboard.Snapshot{}, err
	}
	if err := snap.Validate(); err != nil {
		return dashboard.Snapshot{}, dashboard.NewFetchError(msgBadPayload, err)
	}
	return snap, nil
}

func (svc *service) FetchPartial(ctx context.Context) (dashboard.PartialSnapshot, error) {
	var part dashboard.PartialSnapshot
	if err := svc.get(ctx, partialPath, &part); err != nil {
		return dashboard.PartialSnapshot{}, err
	}
	if err := part.Validate(); err != nil {
		return dashboard.PartialSnapshot{}, dashboard.NewFetchError(msgBadPayload, err)
	}
	return part, nil
}

func (svc *service) get(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}

	// the upstream API identifies the user from the token subject
	token, err := svc.generateToken()
	if err != nil {
		return errors.Wrap(err, "generating service token")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	svc.logger.Debug("source: GET " + path)
	resp, err := svc.client.Do(req)
	if err != nil {
		return dashboard.NewFetchError(msgUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dashboard.NewFetchError(msgUnavailable, errors.Errorf("GET %s: %s", path, resp.Status))
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return dashboard.NewFetchError(msgBadPayload, errors.Wrap(err, "decoding response"))
	}
	return nil
}

// generateToken signs a short-lived JWT identifying the dashboard user to the
// upstream gamification API.
func (svc *service) generateToken() (string, error) {
	now := nowFunc()
	claims := &jwt.StandardClaims{
		Issuer:    svc.appName,
		Subject:   svc.userID,
		ExpiresAt: now.Add(svc.tokenTTL).Unix(),
		IssuedAt:  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod("HS256"), claims)
	ss, err := token.SignedString(svc.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}
