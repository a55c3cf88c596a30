package message

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"
)

const headerKeyUserID = "x-user-id"

type messageStore struct {
	client *resty.Client
}

// New rest message store
func New(client *resty.Client) core.MessageStore {
	return &messageStore{client: client}
}

type message struct {
	ID         interface{} `json:"id"`
	FromUserID json.Number `json:"from_user_id"`
	ToUserID   json.Number `json:"to_user_id"`
	Body       string      `json:"body"`
	CreatedAt  string      `json:"created_at"`
	IsRead     interface{} `json:"is_read"`
}

func (m *message) toCore() *core.Message {
	from, _ := m.FromUserID.Int64()
	to, _ := m.ToUserID.Int64()
	created, _ := cast.ToTimeE(m.CreatedAt)
	read, _ := cast.ToBoolE(m.IsRead)

	return &core.Message{
		ID:         cast.ToString(m.ID),
		FromUserID: from,
		ToUserID:   to,
		Body:       m.Body,
		CreatedAt:  created.UTC(),
		IsRead:     read,
	}
}

func (s *messageStore) request(ctx context.Context, userID int64) *resty.Request {
	req := resthttp.Request(ctx, s.client)
	if userID > 0 {
		req = req.SetHeader(headerKeyUserID, strconv.FormatInt(userID, 10))
	}

	return req
}

func (s *messageStore) List(ctx context.Context, userID, counterpartID int64) ([]*core.Message, error) {
	req := s.request(ctx, userID).SetQueryParam("user_id", strconv.FormatInt(counterpartID, 10))
	if userID > 0 {
		req = req.SetQueryParam("userA", strconv.FormatInt(userID, 10))
	}

	resp, err := req.Get("/api/messages")
	if err == nil {
		err = resthttp.ParseResponse(resp, nil)
	}
	if err != nil {
		return nil, wrap(core.ErrFetchFailed, "list messages", err)
	}

	raw, err := messageList(resp.Body())
	if err != nil {
		return nil, wrap(core.ErrFetchFailed, "list messages", err)
	}

	messages := make([]*core.Message, 0, len(raw))
	for _, m := range raw {
		messages = append(messages, m.toCore())
	}

	return messages, nil
}

// messageList accepts a bare array, {data:[...]} or {messages:[...]}
func messageList(body []byte) ([]*message, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var list []*message
	if body[0] == '[' {
		err := json.Unmarshal(body, &list)
		return list, err
	}

	var env struct {
		Data     []*message `json:"data"`
		Messages []*message `json:"messages"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	if env.Data != nil {
		return env.Data, nil
	}

	return env.Messages, nil
}

func (s *messageStore) Send(ctx context.Context, userID, counterpartID int64, body string) (*core.Message, error) {
	form := map[string]interface{}{
		"to_user_id": counterpartID,
		"body":       body,
	}

	var saved message
	if _, err := resthttp.Execute(s.request(ctx, userID), "POST", "/api/messages", form, &saved); err != nil {
		return nil, wrap(core.ErrSendFailed, "send message", err)
	}

	m := saved.toCore()
	if m.Body == "" {
		m.Body = body
	}
	if m.FromUserID == 0 {
		m.FromUserID = userID
	}
	if m.ToUserID == 0 {
		m.ToUserID = counterpartID
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	return m, nil
}

func wrap(code core.ErrorCode, op string, err error) error {
	e := &core.Error{Code: code, Op: op, Err: err}

	var se *resthttp.StatusError
	if errors.As(err, &se) {
		e.Status = se.Status
		e.Msg = se.Message
	}

	return e
}
