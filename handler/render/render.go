package render

import (
	"encoding/json"
	"net/http"

	"vanguard/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	JSONStatus(w, http.StatusOK, v)
}

// JSONStatus render with json and status
func JSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(t)); err != nil {
		logrus.WithError(err).Errorln("render text")
	}
}

// Error write err as {code, msg} with the mapped http status
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(codes.Status(twerr))

	resp := errorResponse{
		Code: codes.Code(twerr),
		Msg:  twerr.Msg(),
	}

	if ResponseErrorMessageAsHint {
		resp.Hint = err.Error()
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}
