package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vanguard/pkg/id"

	"github.com/go-chi/chi/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

// StatusError non 2xx response
type StatusError struct {
	Status int
	// Message message field of the body, empty if the body has none
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// New resty client for the backend
func New(endpoint string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetHostURL(strings.TrimSuffix(endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Request new resty request with a request id. Calls made while serving
// an incoming request share a trace id derived from its request id.
func Request(ctx context.Context, client *resty.Client) *resty.Request {
	requestID := id.GenTraceID()
	if rid := middleware.GetReqID(ctx); rid != "" {
		requestID = id.TraceIDFrom(rid)
	}

	return WithRequestID(ctx, client, requestID)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, client *resty.Client, requestID string) *resty.Request {
	return client.R().SetContext(ctx).SetHeader(headerKeyRequestID, requestID)
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	logrus.Debugln("url:", method, url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		if r == nil {
			return 0, err
		}

		return r.StatusCode(), err
	}

	logrus.Debugln("resp.status:", r.Status())

	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse parse response
func ParseResponse(r *resty.Response, obj interface{}) error {
	//fail
	if !r.IsSuccess() {
		var body struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			Msg     string `json:"msg"`
		}
		_ = json.Unmarshal(r.Body(), &body)

		msg := body.Message
		if msg == "" {
			msg = body.Msg
		}

		if msg == "" && r.StatusCode() >= http.StatusInternalServerError {
			msg = http.StatusText(r.StatusCode())
		}

		return &StatusError{Status: r.StatusCode(), Message: msg}
	}

	//success
	if obj != nil && len(r.Body()) > 0 {
		if e := json.Unmarshal(r.Body(), obj); e != nil {
			logrus.WithError(e).Debugln("parseResponse")
			return e
		}
	}

	return nil
}
