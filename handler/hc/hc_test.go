package hc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vanguard/pkg/resthttp"
	"vanguard/store/listing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	var down int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&down) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer api.Close()

	h := Handle("1.0.0", listing.New(resthttp.New(api.URL, time.Second)))

	check := func() (int, map[string]string) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		var body map[string]string
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	status, body := check()
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "ok", body["api"])

	atomic.StoreInt32(&down, 1)
	status, body = check()
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.NotEqual(t, "ok", body["api"])
}
