package resthttp

import (
	"bytes"
	"encoding/json"
)

// DecodeRows accepts a bare array, {data:[...]} or {<key>:[...]}.
// Numbers are kept as json.Number.
func DecodeRows(body []byte, key string) ([]map[string]interface{}, error) {
	body, err := unwrap(body, key, '[')
	if err != nil || len(body) == 0 {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := decode(body, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// DecodeRow single object variant of DecodeRows
func DecodeRow(body []byte, key string) (map[string]interface{}, error) {
	body, err := unwrap(body, key, '{')
	if err != nil || len(body) == 0 {
		return nil, err
	}

	var row map[string]interface{}
	if err := decode(body, &row); err != nil {
		return nil, err
	}

	return row, nil
}

func unwrap(body []byte, key string, open byte) ([]byte, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return body, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	for _, k := range []string{"data", key} {
		if v := bytes.TrimSpace(env[k]); len(v) > 0 && v[0] == open {
			return v, nil
		}
	}

	// a bare object is its own row
	if open == '{' {
		return body, nil
	}

	return nil, nil
}

func decode(body []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
