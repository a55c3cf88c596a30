package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/twitchtv/twirp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding bind query params, and the json body for non GET requests,
// into v and validate it
func Binding(r *http.Request, v interface{}) error {
	if err := decoder.Decode(v, r.URL.Query()); err != nil {
		return twirp.InvalidArgumentError("query", err.Error())
	}

	if r.Method != http.MethodGet && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return twirp.InvalidArgumentError("body", err.Error())
		}
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.InvalidArgumentError("params", err.Error())
	}

	return nil
}
