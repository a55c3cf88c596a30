package id

import (
	"strconv"
	"time"

	"github.com/gofrs/uuid"
)

var traceNamespace = uuid.Must(uuid.FromString("6b1e0c1e-3c1a-4f59-9d3e-7a1b9a0f5c21"))

// GenTraceID random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom stable trace id for text, equal texts give equal ids
func TraceIDFrom(text string) string {
	return uuid.NewV5(traceNamespace, text).String()
}

// TempMessageID local id of a message waiting for the api
func TempMessageID(prefix string, t time.Time) string {
	return prefix + strconv.FormatInt(t.UnixNano(), 10)
}
