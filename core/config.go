package core

import (
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Config vanguard config
type Config struct {
	API     API      `json:"api"`
	View    View     `json:"view"`
	Cache   Cache    `json:"cache"`
	Chat    Chat     `json:"chat"`
	Session Storage  `json:"session"`
	Admins  []string `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID int64) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	id := strconv.FormatInt(userID, 10)
	for _, a := range c.Admins {
		if a == id {
			return true
		}
	}

	return false
}

// API backend config
type API struct {
	EndPoint string `json:"end_point"`
	Timeout  string `json:"timeout"`
}

// TimeoutDuration request timeout, 10s by default
func (a API) TimeoutDuration() time.Duration {
	return duration(a.Timeout, 10*time.Second)
}

// View listing view config
type View struct {
	PerPage  int    `json:"per_page"`
	Debounce string `json:"debounce"`
	// Limit page size of the list request
	Limit int `json:"limit"`
}

// DebounceDuration search debounce window, 300ms by default
func (v View) DebounceDuration() time.Duration {
	return duration(v.Debounce, 300*time.Millisecond)
}

// Cache listing cache config
type Cache struct {
	Size int    `json:"size"`
	TTL  string `json:"ttl"`
}

// TTLDuration cache ttl, 30s by default
func (c Cache) TTLDuration() time.Duration {
	return duration(c.TTL, 30*time.Second)
}

// Chat support chat config
type Chat struct {
	CounterpartID int64  `json:"counterpart_id"`
	Interval      string `json:"interval"`
}

// IntervalDuration poll interval, 3s by default
func (c Chat) IntervalDuration() time.Duration {
	return duration(c.Interval, 3*time.Second)
}

// Storage session file config
type Storage struct {
	File string `json:"file"`
}

func duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}

	d, err := cast.ToDurationE(s)
	if err != nil || d <= 0 {
		return def
	}

	return d
}
