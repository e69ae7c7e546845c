// Package teletest provides in-memory stand-ins for telebot types in tests.
package teletest

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Call records one outbound telebot call.
type Call struct {
	Method string
	What   any
	Opts   []any
}

// Text returns the message text of the call, if it carried one.
func (c Call) Text() string {
	s, _ := c.What.(string)
	return s
}

// Markup returns the reply markup attached to the call, if any.
func (c Call) Markup() *tele.ReplyMarkup {
	for _, o := range c.Opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return v.ReplyMarkup
			}
		case *tele.ReplyMarkup:
			return v
		}
	}
	return nil
}

// Context implements the parts of tele.Context used by handlers and middleware.
// Methods that are not overridden panic through the nil embedded interface.
type Context struct {
	tele.Context

	upd tele.Update

	mu    sync.Mutex
	store map[string]any
	calls []Call
	// Err is returned from every outbound call when set.
	Err error
}

// NewMessage builds a context for a private text message from userID.
func NewMessage(updateID int, userID int64, text string) *Context {
	user := &tele.User{ID: userID, Username: "tester"}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	return &Context{
		upd: tele.Update{
			ID:      updateID,
			Message: &tele.Message{ID: updateID * 10, Sender: user, Chat: chat, Text: text},
		},
		store: make(map[string]any),
	}
}

// NewCallback builds a context for an inline button press carrying raw data.
func NewCallback(updateID int, userID int64, data string) *Context {
	user := &tele.User{ID: userID, Username: "tester"}
	chat := &tele.Chat{ID: userID, Type: tele.ChatPrivate}
	return &Context{
		upd: tele.Update{
			ID: updateID,
			Callback: &tele.Callback{
				ID:      "cb",
				Sender:  user,
				Data:    data,
				Message: &tele.Message{ID: updateID * 10, Sender: user, Chat: chat},
			},
		},
		store: make(map[string]any),
	}
}

func (c *Context) Update() tele.Update { return c.upd }

func (c *Context) Callback() *tele.Callback { return c.upd.Callback }

func (c *Context) Message() *tele.Message {
	switch {
	case c.upd.Message != nil:
		return c.upd.Message
	case c.upd.Callback != nil:
		return c.upd.Callback.Message
	}
	return nil
}

func (c *Context) Sender() *tele.User {
	switch {
	case c.upd.Callback != nil:
		return c.upd.Callback.Sender
	case c.upd.Message != nil:
		return c.upd.Message.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *Context) Text() string {
	if c.upd.Message == nil {
		return ""
	}
	return c.upd.Message.Text
}

func (c *Context) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = val
}

func (c *Context) record(method string, what any, opts []any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Method: method, What: what, Opts: opts})
	return c.Err
}

func (c *Context) Send(what any, opts ...any) error  { return c.record("Send", what, opts) }
func (c *Context) Reply(what any, opts ...any) error { return c.record("Reply", what, opts) }
func (c *Context) Edit(what any, opts ...any) error  { return c.record("Edit", what, opts) }

func (c *Context) EditOrSend(what any, opts ...any) error {
	return c.record("EditOrSend", what, opts)
}

func (c *Context) EditOrReply(what any, opts ...any) error {
	return c.record("EditOrReply", what, opts)
}

func (c *Context) Respond(resp ...*tele.CallbackResponse) error {
	var what any
	if len(resp) > 0 {
		what = resp[0]
	}
	return c.record("Respond", what, nil)
}

// Calls returns a snapshot of recorded outbound calls.
func (c *Context) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Last returns the most recent call with the given method.
func (c *Context) Last(method string) (Call, bool) {
	calls := c.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}
