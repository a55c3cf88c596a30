package directory

import (
	"context"
	"errors"
	"strings"

	"vanguard/core"
	"vanguard/pkg/resthttp"

	"github.com/asaskevich/govalidator"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"
)

type directoryStore struct {
	client *resty.Client
}

// New rest store of customers and staff
func New(client *resty.Client) core.DirectoryStore {
	return &directoryStore{client: client}
}

func (s *directoryStore) ListCustomers(ctx context.Context) ([]*core.Person, error) {
	return s.list(ctx, "/api/customers", "customers", "user_id")
}

func (s *directoryStore) ListStaff(ctx context.Context) ([]*core.Person, error) {
	return s.list(ctx, "/api/staff", "staff", "staff_id")
}

// Enroll create a staff member
func (s *directoryStore) Enroll(ctx context.Context, form *core.StaffForm) (*core.Person, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)

	if _, err := govalidator.ValidateStruct(form); err != nil {
		return nil, &core.Error{Code: core.ErrInvalidForm, Op: "staff form", Msg: err.Error(), Err: err}
	}

	resp, err := resthttp.Request(ctx, s.client).SetBody(form).Post("/api/staff")
	if err == nil {
		err = resthttp.ParseResponse(resp, nil)
	}

	var row map[string]interface{}
	if err == nil {
		row, err = resthttp.DecodeRow(resp.Body(), "staff")
	}

	if err != nil {
		return nil, wrap(core.ErrMutationFailed, "enroll staff", err)
	}

	p := toPerson(row, "staff_id")
	if p.Name == "" {
		p.Name, p.Email = form.FullName, form.Email
	}

	return p, nil
}

func (s *directoryStore) list(ctx context.Context, path, key, idKey string) ([]*core.Person, error) {
	resp, err := resthttp.Request(ctx, s.client).Get(path)
	if err == nil {
		err = resthttp.ParseResponse(resp, nil)
	}

	var rows []map[string]interface{}
	if err == nil {
		rows, err = resthttp.DecodeRows(resp.Body(), key)
	}

	if err != nil {
		return nil, wrap(core.ErrFetchFailed, "list "+key, err)
	}

	people := make([]*core.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, toPerson(row, idKey))
	}

	return people, nil
}

func toPerson(row map[string]interface{}, idKey string) *core.Person {
	id := row[idKey]
	if id == nil {
		id = row["id"]
	}

	name := row["full_name"]
	if name == nil {
		name = row["name"]
	}

	return &core.Person{
		ID:         cast.ToInt64(id),
		Name:       cast.ToString(name),
		Email:      cast.ToString(row["email"]),
		Phone:      cast.ToString(row["phone"]),
		Role:       cast.ToString(row["role"]),
		Department: cast.ToString(row["department"]),
		Position:   cast.ToString(row["position"]),
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
