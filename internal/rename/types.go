package rename

import (
	"net/url"
	"strconv"

	"github.com/m3rciful/dobot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// Callback actions handled or emitted by the flow.
const (
	ActionStart  = "rename_droplet"
	ActionCancel = "cancel_rename"
	// ActionDetail opens the droplet detail screen.
	ActionDetail = "droplet_detail"
)

// ActionRename tags contexts owned by this flow.
const ActionRename = "rename"

const (
	keyAccount = "doc_id"
	keyDroplet = "droplet_id"
)

// Context is the pending rename of one user.
// CurrentName is captured at start and may go stale. SessionID ties the
// log lines of one conversation together.
type Context struct {
	AccountRef  string
	DropletID   int
	CurrentName string
	Action      string
	SessionID   string
}

// Ref returns the droplet the context points at.
func (c Context) Ref() DropletRef {
	return DropletRef{AccountRef: c.AccountRef, DropletID: c.DropletID}
}

// DropletRef identifies a droplet through the account that owns it.
type DropletRef struct {
	AccountRef string
	DropletID  int
}

// Params encodes the ref as callback query parameters.
func (r DropletRef) Params() url.Values {
	return url.Values{
		keyAccount: {r.AccountRef},
		keyDroplet: {strconv.Itoa(r.DropletID)},
	}
}

// RefFromParams decodes a ref written by Params.
func RefFromParams(params url.Values) (DropletRef, error) {
	account, err := callbacks.String(params, keyAccount)
	if err != nil {
		return DropletRef{}, err
	}
	id, err := callbacks.Int(params, keyDroplet)
	if err != nil {
		return DropletRef{}, err
	}
	return DropletRef{AccountRef: account, DropletID: id}, nil
}

// RefFromCallback decodes the ref carried by the pressed button.
func RefFromCallback(c tele.Context) (DropletRef, error) {
	params, err := callbacks.Params(c)
	if err != nil {
		return DropletRef{}, err
	}
	return RefFromParams(params)
}

// Messenger delivers HTML messages and returns what it sent.
type Messenger interface {
	Reply(to *tele.Message, text string) (*tele.Message, error)
	Edit(msg tele.Editable, text string, markup *tele.ReplyMarkup) error
}

// DetailView renders the droplet detail screen the flow returns to on cancel.
type DetailView interface {
	Show(c tele.Context, ref DropletRef) error
}
