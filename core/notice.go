package core

import (
	"context"
	"time"
)

// Notice announcement shown to every investor
type Notice struct {
	ID        int64     `json:"notice_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NoticeForm payload of a new notice
type NoticeForm struct {
	Title   string `json:"title" valid:"required"`
	Content string `json:"content" valid:"required"`
}

// NoticeStore notices of the backend
type NoticeStore interface {
	// List newest first
	List(ctx context.Context) ([]*Notice, error)
	Post(ctx context.Context, form *NoticeForm) (*Notice, error)
}
