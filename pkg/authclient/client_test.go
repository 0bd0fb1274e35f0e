package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokens_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/refresh", r.URL.Path)
		ck, err := r.Cookie("refreshToken")
		require.NoError(t, err)
		assert.Equal(t, "old-refresh", ck.Value)

		_ = json.NewEncoder(w).Encode(RefreshResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			AccessExp:    100,
			RefreshExp:   200,
		})
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL+"/").RefreshTokens(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", res.AccessToken)
	assert.Equal(t, "new-refresh", res.RefreshToken)
	assert.EqualValues(t, 200, res.RefreshExp)
}

func TestRefreshTokens_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).RefreshTokens(context.Background(), "revoked")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestRefreshTokens_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "db down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "db down")
}

func TestRefreshTokens_EmptyPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":""}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RefreshTokens(context.Background(), "tok")
	assert.Error(t, err)
}
