package rename

import (
	"context"
	"errors"
	"sync"

	"github.com/m3rciful/dobot/core/metrics"
	"github.com/m3rciful/dobot/core/telegram/state"
	"github.com/m3rciful/dobot/core/telegram/teletest"
	"github.com/m3rciful/dobot/internal/accounts"
	"github.com/m3rciful/dobot/internal/digitalocean"

	tele "gopkg.in/telebot.v4"
)

type fakeAccounts struct {
	mu    sync.Mutex
	byID  map[string]accounts.Account
	calls int
	// failFrom makes every call numbered >= failFrom fail; zero disables it.
	failFrom int
}

func (f *fakeAccounts) Get(_ context.Context, id string) (accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failFrom > 0 && f.calls >= f.failFrom {
		return accounts.Account{}, errors.New("account store unavailable")
	}
	a, ok := f.byID[id]
	if !ok {
		return accounts.Account{}, accounts.ErrNotFound
	}
	return a, nil
}

type renameCall struct {
	Token string
	ID    int
	Name  string
}

type fakeProvider struct {
	mu       sync.Mutex
	droplets map[int]digitalocean.Droplet
	renames  []renameCall
	err      error
	// block, when set, holds Rename until it is closed.
	block chan struct{}
}

func (p *fakeProvider) Droplet(_ context.Context, _ string, id int) (digitalocean.Droplet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.droplets[id]
	if !ok {
		return digitalocean.Droplet{}, &digitalocean.NotFoundError{DropletID: id}
	}
	return d, nil
}

func (p *fakeProvider) Rename(_ context.Context, token string, id int, name string) error {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renames = append(p.renames, renameCall{Token: token, ID: id, Name: name})
	return p.err
}

func (p *fakeProvider) Renames() []renameCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]renameCall(nil), p.renames...)
}

type fakeDetail struct {
	mu   sync.Mutex
	refs []DropletRef
}

func (d *fakeDetail) Show(_ tele.Context, ref DropletRef) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refs = append(d.refs, ref)
	return nil
}

type harness struct {
	flow     *Flow
	accounts *fakeAccounts
	provider *fakeProvider
	msgr     *teletest.Messenger
	sessions *state.Memory[Context]
	detail   *fakeDetail
	metrics  *metrics.Metrics
}

const (
	testUser    int64 = 77
	testAccount       = "main"
	testDroplet       = 42
)

var testRef = DropletRef{AccountRef: testAccount, DropletID: testDroplet}

func newHarness(provider Provider) *harness {
	h := &harness{
		accounts: &fakeAccounts{byID: map[string]accounts.Account{
			testAccount: {ID: testAccount, Name: "Main", Token: "tok"},
		}},
		provider: &fakeProvider{droplets: map[int]digitalocean.Droplet{
			testDroplet: {ID: testDroplet, Name: "web-01"},
		}},
		msgr:     &teletest.Messenger{},
		sessions: state.NewMemory[Context](),
		detail:   &fakeDetail{},
		metrics:  metrics.New(),
	}
	if provider == nil {
		provider = h.provider
	}
	flow, err := New(Deps{
		Accounts:  h.accounts,
		Provider:  provider,
		Messenger: h.msgr,
		Sessions:  h.sessions,
		Detail:    h.detail,
		Metrics:   h.metrics,
	})
	if err != nil {
		panic(err)
	}
	h.flow = flow
	return h
}

// promptMessage is the bot message that turns into the rename prompt.
func promptMessage() *tele.Message {
	return &tele.Message{ID: 500, Chat: &tele.Chat{ID: testUser}}
}

func userMessage(text string) *tele.Message {
	return &tele.Message{
		ID:     600,
		Text:   text,
		Chat:   &tele.Chat{ID: testUser},
		Sender: &tele.User{ID: testUser},
	}
}

// lostRace behaves as if another submission took the context first.
type lostRace struct {
	*state.Memory[Context]
}

func (s lostRace) Take(userID int64) (Context, bool) {
	s.Memory.Clear(userID)
	return Context{}, false
}

// editHook runs onEdit, then fails the edit.
type editHook struct {
	*teletest.Messenger
	onEdit func()
}

func (m editHook) Edit(tele.Editable, string, *tele.ReplyMarkup) error {
	m.onEdit()
	return errors.New("telegram: message to edit not found (400)")
}
