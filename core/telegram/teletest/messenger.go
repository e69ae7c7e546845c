package teletest

import (
	"strconv"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Delivery is one message produced through Messenger.
type Delivery struct {
	Kind      string // "reply" or "edit"
	MessageID string
	Text      string
	Markup    *tele.ReplyMarkup
}

// Messenger records replies and edits and hands out sequential message IDs.
type Messenger struct {
	mu         sync.Mutex
	next       int
	deliveries []Delivery
	// Err is returned from every call when set.
	Err error
}

// Reply records a reply to msg and returns the new message.
func (m *Messenger) Reply(to *tele.Message, text string) (*tele.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.next++
	msg := &tele.Message{ID: 1000 + m.next, Text: text}
	if to != nil {
		msg.Chat = to.Chat
	}
	m.deliveries = append(m.deliveries, Delivery{Kind: "reply", MessageID: strconv.Itoa(msg.ID), Text: text})
	return msg, nil
}

// Edit records an edit of msg.
func (m *Messenger) Edit(msg tele.Editable, text string, markup *tele.ReplyMarkup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	id, _ := msg.MessageSig()
	m.deliveries = append(m.deliveries, Delivery{Kind: "edit", MessageID: id, Text: text, Markup: markup})
	return nil
}

// Deliveries returns a snapshot of everything delivered so far.
func (m *Messenger) Deliveries() []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Delivery(nil), m.deliveries...)
}

// Last returns the latest delivery, or a zero Delivery when nothing was sent.
func (m *Messenger) Last() Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.deliveries) == 0 {
		return Delivery{}
	}
	return m.deliveries[len(m.deliveries)-1]
}
