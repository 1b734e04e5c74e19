package httpsource

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
)

func testLogger() core.Logger {
	return core.NewStdLogger(log.New(ioutil.Discard, "", 0), false)
}

func testConfig(baseURL string) *core.Config {
	return &core.Config{
		AppName:   "Questboard",
		SecretKey: "test-secret",
		Source: core.SourceConfig{
			BaseURL:       baseURL,
			Timeout:       2 * time.Second,
			TokenLifetime: 5 * time.Minute,
		},
	}
}

func validSnapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		User: dashboard.DashboardUser{
			ID:       "u1",
			Username: "hero",
			Stats: dashboard.UserStats{
				Level:        2,
				CurrentXP:    10,
				RequiredXP:   100,
				TotalXP:      110,
				Rank:         dashboard.Rank{Tier: dashboard.TierBronze},
				RankPosition: 1,
			},
		},
		ActiveQuests: []dashboard.DashboardQuest{{
			ID:     "q1",
			Title:  "Solve 5 equations",
			Type:   dashboard.QuestDaily,
			Status: dashboard.StatusInProgress,
			Progress: dashboard.QuestProgress{
				Current: 2, Target: 5, Percentage: 40,
			},
		}},
	}
}

func TestService_FetchAll(t *testing.T) {
	// freeze time so the token's expiry is predictable (and still valid when
	// parsed back)
	now := time.Now().Truncate(time.Second)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	t.Run("ok", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, snapshotPath, r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(validSnapshot())
		}))
		defer srv.Close()

		conf := testConfig(srv.URL)
		svc := NewService(conf, "u1", testLogger())

		snap, err := svc.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "hero", snap.User.Username)
		assert.Len(t, snap.ActiveQuests, 1)

		// the request carries a signed token identifying the user
		require.Regexp(t, "^Bearer ", gotAuth)
		claims := new(jwt.StandardClaims)
		_, err = jwt.ParseWithClaims(gotAuth[len("Bearer "):], claims, func(*jwt.Token) (interface{}, error) {
			return []byte(conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, conf.AppName, claims.Issuer)
		assert.Equal(t, now.Add(conf.Source.TokenLifetime).Unix(), claims.ExpiresAt)
	})

	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := NewService(testConfig(srv.URL), "u1", testLogger())

		_, err := svc.FetchAll(context.Background())
		require.Error(t, err)
		ferr, ok := err.(*dashboard.FetchError)
		require.True(t, ok, "want *dashboard.FetchError, got %T", err)
		assert.Equal(t, msgUnavailable, ferr.Message)
	})

	t.Run("connection refused", func(t *testing.T) {
		svc := NewService(testConfig("http://127.0.0.1:1"), "u1", testLogger())

		_, err := svc.FetchAll(context.Background())
		require.Error(t, err)
		ferr, ok := err.(*dashboard.FetchError)
		require.True(t, ok)
		assert.Equal(t, msgUnavailable, ferr.Message)
	})

	t.Run("invalid payload rejected at the boundary", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := validSnapshot()
			snap.ActiveQuests[0].Status = "paused" // not a known status
			_ = json.NewEncoder(w).Encode(snap)
		}))
		defer srv.Close()

		svc := NewService(testConfig(srv.URL), "u1", testLogger())

		_, err := svc.FetchAll(context.Background())
		require.Error(t, err)
		ferr, ok := err.(*dashboard.FetchError)
		require.True(t, ok)
		assert.Equal(t, msgBadPayload, ferr.Message)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{"))
		}))
		defer srv.Close()

		svc := NewService(testConfig(srv.URL), "u1", testLogger())

		_, err := svc.FetchAll(context.Background())
		require.Error(t, err)
		ferr, ok := err.(*dashboard.FetchError)
		require.True(t, ok)
		assert.Equal(t, msgBadPayload, ferr.Message)
	})
}

func TestService_FetchPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, partialPath, r.URL.Path)
		full := validSnapshot()
		part := dashboard.PartialSnapshot{
			User:         full.User,
			ActiveQuests: full.ActiveQuests,
		}
		_ = json.NewEncoder(w).Encode(part)
	}))
	defer srv.Close()

	svc := NewService(testConfig(srv.URL), "u1", testLogger())

	part, err := svc.FetchPartial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", part.User.ID)
	assert.Len(t, part.ActiveQuests, 1)
}
