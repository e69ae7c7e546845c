package telegram

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func dialErr() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestRetryTransportRetriesDialErrors(t *testing.T) {
	calls := 0
	rt := newRetryTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls < 3 {
			return nil, dialErr()
		}
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "chat_id=1", string(body))
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}), 3, 0)

	req, err := http.NewRequest(http.MethodPost, "https://api.telegram.org/botX/sendMessage", strings.NewReader("chat_id=1"))
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, calls)
}

func TestRetryTransportStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("tls: bad certificate")
	rt := newRetryTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return nil, permanent
	}), 3, 0)

	req, err := http.NewRequest(http.MethodGet, "https://api.telegram.org/botX/getMe", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryTransportGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	rt := newRetryTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return nil, dialErr()
	}), 2, 0)

	req, err := http.NewRequest(http.MethodGet, "https://api.telegram.org/botX/getMe", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryTransportHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rt := newRetryTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		cancel()
		return nil, dialErr()
	}), 3, 1<<30)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.telegram.org/botX/getMe", nil)
	require.NoError(t, err)

	_, err = rt.RoundTrip(req)
	assert.ErrorIs(t, err, context.Canceled)
}
