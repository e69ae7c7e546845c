package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m3rciful/dobot/core/logger"
	tg "github.com/m3rciful/dobot/core/telegram"
	"github.com/m3rciful/dobot/core/telegram/commands"
	"github.com/m3rciful/dobot/core/telegram/format"
	tghelpers "github.com/m3rciful/dobot/core/telegram/helpers"
	"github.com/m3rciful/dobot/core/telegram/keyboard"
	"github.com/m3rciful/dobot/internal/accounts"
	"github.com/m3rciful/dobot/internal/digitalocean"
	"github.com/m3rciful/dobot/internal/rename"

	tele "gopkg.in/telebot.v4"
)

// DropletFetcher loads droplet metadata.
type DropletFetcher interface {
	Droplet(ctx context.Context, token string, id int) (digitalocean.Droplet, error)
}

// DetailView renders one droplet with its actions.
type DetailView struct {
	Accounts accounts.Store
	Droplets DropletFetcher
}

var _ rename.DetailView = (*DetailView)(nil)

// Register binds the detail callback and the /droplet command.
func (v *DetailView) Register(reg *tg.Registry) error {
	err := reg.RegisterCommand("/droplet", commands.Command{
		Handler:     v.HandleCommand,
		Description: "Open a droplet",
		Usage:       "<account> <droplet id>",
	})
	if err != nil {
		return err
	}
	return reg.RegisterCallback(rename.ActionDetail, v.HandleCallback)
}

// Show edits the pressed message into the detail screen, or sends it for commands.
func (v *DetailView) Show(c tele.Context, ref rename.DropletRef) error {
	text, markup := v.render(tghelpers.BuildContext(c), ref)
	return tghelpers.EditOrSendHTML(c, text, markup)
}

// HandleCallback answers the Retry and Refresh buttons.
func (v *DetailView) HandleCallback(c tele.Context) error {
	ref, err := rename.RefFromCallback(c)
	if err != nil {
		return tghelpers.SendHTML(c, "This button is outdated, open the droplet again")
	}
	return v.Show(c, ref)
}

// HandleCommand parses "/droplet <account> <id>".
func (v *DetailView) HandleCommand(c tele.Context) error {
	ref, err := parseDropletArgs(c.Text())
	if err != nil {
		return tghelpers.ReplyHTML(c, format.Escape(err.Error()))
	}
	return v.Show(c, ref)
}

func parseDropletArgs(text string) (rename.DropletRef, error) {
	usage := errors.New("usage: /droplet <account> <droplet id>")
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return rename.DropletRef{}, usage
	}
	id, err := strconv.Atoi(fields[2])
	if err != nil || id <= 0 {
		return rename.DropletRef{}, usage
	}
	return rename.DropletRef{AccountRef: fields[1], DropletID: id}, nil
}

func (v *DetailView) render(ctx context.Context, ref rename.DropletRef) (string, *tele.ReplyMarkup) {
	back := keyboard.InlineButtons(keyboard.InlineBtn{Text: "🔄 Retry", Action: rename.ActionDetail, Params: ref.Params()})

	account, err := v.Accounts.Get(ctx, ref.AccountRef)
	if err != nil {
		return v.failed(ctx, ref, err), back
	}
	d, err := v.Droplets.Droplet(ctx, account.Token, ref.DropletID)
	if err != nil {
		return v.failed(ctx, ref, err), back
	}

	lines := []string{
		"🏷️ Name: " + format.Code(d.Name),
		"📶 Status: " + format.Escape(d.Status),
		"🌍 Region: " + format.Escape(d.Region),
		"📦 Size: " + format.Escape(d.SizeSlug),
	}
	if d.PublicIP != "" {
		lines = append(lines, "🌐 IPv4: "+format.Code(d.PublicIP))
	}
	text := format.Lines(
		"<b>🖥 Droplet</b> · "+format.Escape(account.Name),
		strings.Join(lines, "\n"),
	)
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✏️ Rename", Action: rename.ActionStart, Params: ref.Params()},
			{Text: "🔄 Refresh", Action: rename.ActionDetail, Params: ref.Params()},
		},
	)
	return text, markup
}

func (v *DetailView) failed(ctx context.Context, ref rename.DropletRef, err error) string {
	logger.Warn(ctx, "app", "droplet.detail",
		slog.String("status", "fail"),
		slog.String("account_id", ref.AccountRef),
		slog.Int("droplet_id", ref.DropletID),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	return "⚠️ Failed to load account or droplet: " + format.Code(format.Truncate(err.Error(), 300))
}
