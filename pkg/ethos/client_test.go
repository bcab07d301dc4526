package ethos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeguild/ethos-p2p/pkg/models"
)

func TestCreateUserkey(t *testing.T) {
	// The leading "@" is stripped, case is preserved.
	assert.Equal(t, "twitter:Alice", CreateUserkey(models.PlatformTwitter, "@Alice"))
	assert.Equal(t, "twitter:Alice", CreateUserkey(models.PlatformTwitter, "Alice"))
	assert.Equal(t, "discord: trader#1234", CreateUserkey(models.PlatformDiscord, " trader#1234"))
}

func TestFetchScoreByUserkey(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/userkey", r.URL.Path)
			assert.Equal(t, "twitter:trader1", r.URL.Query().Get("userkey"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.NotEmpty(t, r.Header.Get("X-Client"))
			json.NewEncoder(w).Encode(ScoreData{Score: 1750, Level: "reputable"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		data, err := client.FetchScoreByUserkey(context.Background(), "twitter:trader1")

		require.NoError(t, err)
		assert.Equal(t, 1750, data.Score)
		assert.Equal(t, "reputable", data.Level)
	})

	t.Run("Server Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.FetchScoreByUserkey(context.Background(), "twitter:trader1")

		assert.ErrorIs(t, err, ErrScoreUnavailable)
	})

	t.Run("Not Found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such userkey", http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.FetchScoreByUserkey(context.Background(), "twitter:nobody")

		// A 404 must not turn into a default score.
		assert.ErrorIs(t, err, ErrScoreUnavailable)
	})

	t.Run("Malformed Payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.FetchScoreByUserkey(context.Background(), "twitter:trader1")

		assert.ErrorIs(t, err, ErrScoreUnavailable)
	})

	t.Run("Transport Error", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		_, err := client.FetchScoreByUserkey(context.Background(), "twitter:trader1")

		assert.ErrorIs(t, err, ErrScoreUnavailable)
	})
}

func TestFetchScoresByUserkeys(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/userkeys", r.URL.Path)

			var body map[string][]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"twitter:a", "discord:b", "twitter:gone"}, body["userkeys"])

			json.NewEncoder(w).Encode(map[string]*ScoreData{
				"twitter:a": {Score: 1400},
				"discord:b": {Score: 2100},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		scores, err := client.FetchScoresByUserkeys(context.Background(), []string{"twitter:a", "discord:b", "twitter:gone"})

		require.NoError(t, err)
		assert.Len(t, scores, 3)
		assert.Equal(t, 1400, scores["twitter:a"].Score)
		assert.Equal(t, 2100, scores["discord:b"].Score)
		assert.Nil(t, scores["twitter:gone"])
	})

	t.Run("Server Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		_, err := client.FetchScoresByUserkeys(context.Background(), []string{"twitter:a"})

		assert.ErrorIs(t, err, ErrScoreUnavailable)
	})
}

func TestCheckScoreStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		json.NewEncoder(w).Encode(ScoreStatus{IsPending: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	status, err := client.CheckScoreStatus(context.Background(), "twitter:trader1")

	require.NoError(t, err)
	assert.True(t, status.IsPending)
}
