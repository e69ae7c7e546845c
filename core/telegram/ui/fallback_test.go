package ui

import (
	"testing"

	"github.com/m3rciful/dobot/core/telegram/teletest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestUnknownTextRepliesWithHint(t *testing.T) {
	c := teletest.NewMessage(1, 7, "hello")
	require.NoError(t, Fallbacks{Text: "Use /start"}.UnknownText()(c))

	call, ok := c.Last("Reply")
	require.True(t, ok)
	assert.Equal(t, "Use /start", call.Text())
}

func TestUnknownTextSilentWithoutHint(t *testing.T) {
	c := teletest.NewMessage(1, 7, "hello")
	require.NoError(t, Fallbacks{}.UnknownText()(c))
	assert.Empty(t, c.Calls())
}

func TestUnknownCallbackDefaultsAlert(t *testing.T) {
	c := teletest.NewCallback(1, 7, "gone?x=1")
	require.NoError(t, Fallbacks{}.UnknownCallback()(c))

	call, ok := c.Last("Respond")
	require.True(t, ok)
	resp, ok := call.What.(*tele.CallbackResponse)
	require.True(t, ok)
	assert.Equal(t, "This button is no longer supported", resp.Text)
}
