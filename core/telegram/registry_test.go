package telegram

import (
	"testing"

	"github.com/m3rciful/dobot/core/telegram/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegisterCommandValidates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/droplet", commands.Command{Handler: noop, Description: "Open a droplet"}))

	assert.Error(t, reg.RegisterCommand("/droplet", commands.Command{Handler: noop, Description: "again"}))
	assert.Error(t, reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "no slash"}))
	assert.Error(t, reg.RegisterCommand("/help", commands.Command{Handler: noop}))
	assert.Len(t, reg.Commands(), 1)
}

func TestLookupCommandUsesFirstWordAndAliases(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/droplet", commands.Command{
		Handler:     noop,
		Description: "Open a droplet",
		Aliases:     []string{"d"},
	}))

	for _, text := range []string{"/droplet main 42", "/droplet@dobot main 42", "d main 42", "/d"} {
		key, _, ok := reg.LookupCommand(text)
		assert.True(t, ok, text)
		assert.Equal(t, "/droplet", key, text)
	}
	_, _, ok := reg.LookupCommand("web-01")
	assert.False(t, ok)
	_, _, ok = reg.LookupCommand("   ")
	assert.False(t, ok)
}

func TestListCommandsAndHelpSkipHidden(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Show help"}))
	require.NoError(t, reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Dump state", Hidden: true}))
	require.NoError(t, reg.RegisterCommand("/droplet", commands.Command{Handler: noop, Description: "Open a droplet", Usage: "<id>"}))

	assert.Equal(t, []tele.Command{
		{Text: "droplet", Description: "Open a droplet"},
		{Text: "start", Description: "Show help"},
	}, reg.ListCommands(true))
	assert.Len(t, reg.ListCommands(false), 3)
	assert.Equal(t, "<code>/droplet &lt;id&gt;</code> - Open a droplet\n<code>/start</code> - Show help", reg.HelpText())
}

func TestRegisterCallback(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("rename_droplet", noop))
	assert.Error(t, reg.RegisterCallback("rename_droplet", noop))
	assert.Error(t, reg.RegisterCallback("", noop))

	_, ok := reg.GetCallback("rename_droplet")
	assert.True(t, ok)
	assert.Equal(t, []string{"rename_droplet"}, reg.ListCallbacks())
	assert.NotNil(t, reg.CallbackNotFound())
}
