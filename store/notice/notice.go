package notice

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/asaskevich/govalidator"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"
)

type noticeStore struct {
	client *resty.Client
}

// New rest notice store
func New(client *resty.Client) core.NoticeStore {
	return &noticeStore{client: client}
}

func (s *noticeStore) List(ctx context.Context) ([]*core.Notice, error) {
	resp, err := resthttp.Request(ctx, s.client).Get("/api/notices")
	if err == nil {
		err = resthttp.ParseResponse(resp, nil)
	}

	var rows []map[string]interface{}
	if err == nil {
		rows, err = resthttp.DecodeRows(resp.Body(), "notices")
	}

	if err != nil {
		return nil, wrap(core.ErrFetchFailed, "list notices", err)
	}

	notices := make([]*core.Notice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, toNotice(row))
	}

	sort.SliceStable(notices, func(i, j int) bool {
		return notices[i].CreatedAt.After(notices[j].CreatedAt)
	})

	return notices, nil
}

func (s *noticeStore) Post(ctx context.Context, form *core.NoticeForm) (*core.Notice, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Content = strings.TrimSpace(form.Content)

	if _, err := govalidator.ValidateStruct(form); err != nil {
		return nil, &core.Error{Code: core.ErrInvalidForm, Op: "notice form", Msg: err.Error(), Err: err}
	}

	resp, err := resthttp.Request(ctx, s.client).SetBody(form).Post("/api/notices")
	if err == nil {
		err = resthttp.ParseResponse(resp, nil)
	}

	var row map[string]interface{}
	if err == nil {
		row, err = resthttp.DecodeRow(resp.Body(), "notice")
	}

	if err != nil {
		return nil, wrap(core.ErrMutationFailed, "post notice", err)
	}

	n := toNotice(row)
	// some backends answer with a bare ack
	if n.Title == "" {
		n.Title, n.Content = form.Title, form.Content
	}

	return n, nil
}

func toNotice(row map[string]interface{}) *core.Notice {
	id := row["notice_id"]
	if id == nil {
		id = row["id"]
	}

	created, _ := cast.ToTimeE(row["created_at"])

	return &core.Notice{
		ID:        cast.ToInt64(id),
		Title:     cast.ToString(row["title"]),
		Content:   cast.ToString(row["content"]),
		CreatedAt: created.UTC(),
	}
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
