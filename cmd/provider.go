package cmd

import (
	"context"
	"errors"

	"vanguard/core"
	"vanguard/pkg/resthttp"
	authservice "vanguard/service/session"
	"vanguard/store/directory"
	"vanguard/store/listing"
	"vanguard/store/message"
	"vanguard/store/notice"
	"vanguard/store/session"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideSessionStore() core.SessionStore {
	sessions, err := session.New(cfg.Session.File)
	if err != nil {
		logrus.WithError(err).Warnln("session file unavailable, using memory")
		return session.Memory()
	}

	return sessions
}

// provideSession stored session with the admin role applied from config
func provideSession(ctx context.Context, sessions core.SessionStore) (*core.Session, error) {
	s, err := sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.IsAdmin(s.User.ID) {
		s.User.Role = core.RoleAdmin
	}

	return s, nil
}

// provideClient api client, authorized when a session is stored
func provideClient(ctx context.Context, sessions core.SessionStore) *resty.Client {
	client := resthttp.New(cfg.API.EndPoint, cfg.API.TimeoutDuration())

	s, err := sessions.Get(ctx)
	switch {
	case err == nil:
		client.SetAuthToken(s.Token)
	case !errors.Is(err, core.ErrSessionNotFound):
		logrus.WithError(err).Warnln("read session")
	}

	return client
}

// ---------------store-----------------------------------------

func provideListingStore(client *resty.Client) core.ListingStore {
	store := listing.New(client)
	if cfg.Cache.Size > 0 {
		store = listing.Cache(store, cfg.Cache.Size, cfg.Cache.TTLDuration())
	}

	return store
}

func provideDirectoryStore(client *resty.Client) core.DirectoryStore {
	return directory.New(client)
}

func provideNoticeStore(client *resty.Client) core.NoticeStore {
	return notice.New(client)
}

func provideMessageStore(client *resty.Client) core.MessageStore {
	return message.New(client)
}

// ---------------service-----------------------------------------

func provideAuthService(client *resty.Client) core.AuthService {
	return authservice.New(client)
}
