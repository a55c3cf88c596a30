package resthttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(headerKeyRequestID))

		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"status":"success"}`))
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		case "/bad":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":"error","message":"name is required"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>oops</html>`))
		}
	}))
	defer srv.Close()

	client := New(srv.URL+"/", time.Second)
	ctx := context.Background()

	var resp struct {
		Status string `json:"status"`
	}
	code, err := Execute(Request(ctx, client), "get", "/ok", nil, &resp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp.Status)

	code, err = Execute(Request(ctx, client), "delete", "/empty", nil, &resp)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, code)

	_, err = Execute(Request(ctx, client), "post", "/bad", map[string]string{}, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "name is required", se.Error())

	_, err = Execute(Request(ctx, client), "get", "/down", nil, nil)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Bad Gateway", se.Message)
}

func TestRequestFollowsIncomingRequestID(t *testing.T) {
	client := New("http://localhost", time.Second)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "host/abc-000001")

	a := Request(ctx, client).Header.Get(headerKeyRequestID)
	b := Request(ctx, client).Header.Get(headerKeyRequestID)
	assert.Equal(t, a, b)
	assert.Len(t, a, 36)

	c := Request(context.Background(), client).Header.Get(headerKeyRequestID)
	assert.NotEqual(t, a, c)
}
