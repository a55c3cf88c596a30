package messenger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"vanguard/core"
	"vanguard/pkg/id"
	"vanguard/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Poller keeps the support thread between a user and the counterpart in sync
type Poller struct {
	worker.BaseJob
	messages      core.MessageStore
	userID        int64
	counterpartID int64

	ctx    context.Context
	cancel context.CancelFunc

	mux       sync.Mutex
	thread    []*core.Message
	err       error
	listeners []func([]*core.Message)
}

// New new poller, Start begins polling every interval
func New(messages core.MessageStore, userID, counterpartID int64, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())

	p := &Poller{
		messages:      messages,
		userID:        userID,
		counterpartID: counterpartID,
		ctx:           ctx,
		cancel:        cancel,
	}

	p.Cron = cron.New()
	if _, err := p.Cron.AddFunc(fmt.Sprintf("@every %s", interval), p.Run); err != nil {
		panic(err)
	}

	p.OnWork = func() error {
		return p.Poll(p.ctx)
	}

	return p
}

// Stop cancel the in flight request and stop polling
func (p *Poller) Stop() error {
	p.cancel()
	return p.BaseJob.Stop()
}

// OnChange fn is called with the thread after every change
func (p *Poller) OnChange(fn func([]*core.Message)) {
	p.mux.Lock()
	defer p.mux.Unlock()

	p.listeners = append(p.listeners, fn)
}

// Messages current thread, oldest first
func (p *Poller) Messages() []*core.Message {
	p.mux.Lock()
	defer p.mux.Unlock()

	return p.thread
}

// Err last poll failure, nil after a successful poll
func (p *Poller) Err() error {
	p.mux.Lock()
	defer p.mux.Unlock()

	return p.err
}

// Poll list the thread once and merge it
func (p *Poller) Poll(ctx context.Context) error {
	incoming, err := p.messages.List(ctx, p.userID, p.counterpartID)

	p.mux.Lock()
	if err != nil {
		p.err = err
		p.mux.Unlock()

		if ctx.Err() == nil {
			logger.FromContext(ctx).WithError(err).Errorln("poll messages")
		}
		return err
	}

	p.err = nil
	p.thread = MergeMessages(p.thread, incoming)
	p.mux.Unlock()

	p.notify()
	return nil
}

// Send append a temporary message, swap it for the stored one on success
// and drop it on failure
func (p *Poller) Send(ctx context.Context, body string) (*core.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &core.Error{Code: core.ErrSendFailed, Op: "send message", Msg: "empty message"}
	}

	now := time.Now().UTC()
	tmp := &core.Message{
		ID:         id.TempMessageID(core.TempMessagePrefix, now),
		FromUserID: p.userID,
		ToUserID:   p.counterpartID,
		Body:       body,
		CreatedAt:  now,
	}

	p.mux.Lock()
	p.thread = append(without(p.thread, tmp.ID), tmp)
	p.mux.Unlock()
	p.notify()

	saved, err := p.messages.Send(ctx, p.userID, p.counterpartID, body)

	p.mux.Lock()
	p.thread = without(p.thread, tmp.ID)
	if err == nil {
		p.thread = MergeMessages(p.thread, []*core.Message{saved})
	}
	p.mux.Unlock()
	p.notify()

	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("send message")
		return nil, err
	}

	return saved, nil
}

func (p *Poller) notify() {
	p.mux.Lock()
	thread, listeners := p.thread, p.listeners
	p.mux.Unlock()

	for _, fn := range listeners {
		fn(thread)
	}
}

// MergeMessages merge incoming into current by id, incoming wins.
// Temporary messages stay after the stored ones, merging the same
// batch twice changes nothing.
func MergeMessages(current, incoming []*core.Message) []*core.Message {
	byID := make(map[string]int, len(current)+len(incoming))
	stored := make([]*core.Message, 0, len(current)+len(incoming))
	var pending []*core.Message

	put := func(m *core.Message) {
		if idx, ok := byID[m.ID]; ok {
			stored[idx] = m
			return
		}

		byID[m.ID] = len(stored)
		stored = append(stored, m)
	}

	for _, m := range current {
		if m.IsTemp() {
			pending = append(pending, m)
			continue
		}
		put(m)
	}

	for _, m := range incoming {
		if m == nil || m.ID == "" || m.IsTemp() {
			continue
		}
		put(m)
	}

	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].CreatedAt.Before(stored[j].CreatedAt)
	})

	return append(stored, pending...)
}

func without(thread []*core.Message, id string) []*core.Message {
	out := make([]*core.Message, 0, len(thread))
	for _, m := range thread {
		if m.ID != id {
			out = append(out, m)
		}
	}

	return out
}
