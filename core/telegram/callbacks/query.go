package callbacks

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// MaxDataLen is the Telegram limit for inline button callback data, in bytes.
const MaxDataLen = 64

// ErrMissingKey is returned when a required payload key is absent or empty.
var ErrMissingKey = errors.New("callback: missing key")

// Encode builds callback data in the form action?key=value&key=value.
func Encode(action string, params url.Values) string {
	if len(params) == 0 {
		return action
	}
	return action + "?" + params.Encode()
}

// Decode splits action?query data into the action and its parameters.
// A leading telebot unique marker (\f) is stripped.
func Decode(data string) (string, url.Values, error) {
	data = strings.TrimPrefix(strings.TrimSpace(data), "\f")
	action, query, _ := strings.Cut(data, "?")
	action = strings.TrimSpace(action)
	if action == "" {
		return "", nil, fmt.Errorf("callback: empty action in %q", data)
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return "", nil, fmt.Errorf("callback: parse %q: %w", data, err)
	}
	return action, params, nil
}

// Action returns the action part of the callback attached to c.
func Action(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	action, _, err := Decode(cb.Data)
	if err != nil {
		return ""
	}
	return action
}

// Params returns the parsed payload parameters of the callback attached to c.
func Params(c tele.Context) (url.Values, error) {
	cb := c.Callback()
	if cb == nil {
		return nil, errors.New("callback: no callback in update")
	}
	if cb.Unique != "" {
		// telebot already split "\funique|payload"; Data holds the payload only
		return url.ParseQuery(cb.Data)
	}
	_, params, err := Decode(cb.Data)
	return params, err
}

// String returns the first value for key, or ErrMissingKey.
func String(params url.Values, key string) (string, error) {
	v := strings.TrimSpace(params.Get(key))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

// Int returns the first value for key parsed as int.
func Int(params url.Values, key string) (int, error) {
	v, err := String(params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("callback: %s: %w", key, err)
	}
	return n, nil
}
