package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt"
	"github.com/spf13/cast"
	"golang.org/x/sync/singleflight"
)

// New admin login against the backend
func New(client *resty.Client) core.AuthService {
	return &session{
		client: client,
		sf:     &singleflight.Group{},
	}
}

type session struct {
	client *resty.Client
	sf     *singleflight.Group
}

type loginResult struct {
	Token string `json:"token"`
	User  struct {
		ID    interface{} `json:"id"`
		Name  string      `json:"name"`
		Email string      `json:"email"`
		Role  string      `json:"role"`
	} `json:"user"`
}

func (s *session) Login(ctx context.Context, email, password string) (*core.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &core.Error{Code: core.ErrLoginFailed, Op: "login", Msg: "email and password are required"}
	}

	v, err, _ := s.sf.Do(flightKey(email, password), func() (interface{}, error) {
		resp, err := resthttp.Request(ctx, s.client).
			SetBody(map[string]string{"email": email, "password": password}).
			Post("/api/auth/admin/login")
		if err == nil {
			err = resthttp.ParseResponse(resp, nil)
		}
		if err != nil {
			return nil, wrap("login", err)
		}

		result, err := decodeLogin(resp.Body())
		if err != nil {
			return nil, wrap("login", err)
		}

		return toSession(result)
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.Session), nil
}

// flightKey only identical credentials share a login request
func flightKey(email, password string) string {
	sum := sha256.Sum256([]byte(password))
	return email + ":" + hex.EncodeToString(sum[:])
}

// decodeLogin accept {"data": {...}} as well as the bare result
func decodeLogin(body []byte) (*loginResult, error) {
	var env struct {
		Data *loginResult `json:"data"`
		loginResult
	}

	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	if env.Data != nil {
		return env.Data, nil
	}

	return &env.loginResult, nil
}

func toSession(r *loginResult) (*core.Session, error) {
	if r.Token == "" {
		return nil, &core.Error{Code: core.ErrLoginFailed, Op: "login", Msg: "no token returned"}
	}

	s := &core.Session{
		Token: r.Token,
		User: core.Profile{
			ID:    cast.ToInt64(r.User.ID),
			Name:  r.User.Name,
			Email: r.User.Email,
			Role:  r.User.Role,
		},
	}

	// fill what the user payload left out from the token claims
	if claims, ok := parseClaims(r.Token); ok {
		if s.User.ID == 0 {
			s.User.ID = claimInt(claims, "id", "user_id", "sub")
		}

		if s.User.Role == "" {
			s.User.Role = cast.ToString(claims["role"])
		}

		if s.User.Email == "" {
			s.User.Email = cast.ToString(claims["email"])
		}
	}

	if s.User.ID <= 0 {
		return nil, &core.Error{Code: core.ErrLoginFailed, Op: "login", Msg: "no user id in the login response"}
	}

	return s, nil
}

// parseClaims token claims without verifying the signature, the backend
// verifies every request
func parseClaims(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	return claims, true
}

func claimInt(claims jwt.MapClaims, keys ...string) int64 {
	for _, key := range keys {
		if v, ok := claims[key]; ok {
			if id := cast.ToInt64(v); id > 0 {
				return id
			}
		}
	}

	return 0
}

func wrap(op string, err error) error {
	var e *core.Error
	if errors.As(err, &e) {
		return e
	}

	e = &core.Error{Code: core.ErrLoginFailed, Op: op, Err: err}

	var se *resthttp.StatusError
	if errors.As(err, &se) {
		e.Status = se.Status
		e.Msg = se.Message
	}

	return e
}
