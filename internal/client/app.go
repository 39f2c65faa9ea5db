package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	summaryDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-summarizer/pkg/mailer"
)

// App drives State against the API. Each action allows a single request in
// flight; a second call while one is pending returns ErrBusy.
type App struct {
	mu    sync.Mutex
	state State
	api   API
	now   func() time.Time
}

// AppOption configures an App
type AppOption func(*App)

// WithNow overrides the clock used for banner expiry
func WithNow(now func() time.Time) AppOption {
	return func(a *App) {
		a.now = now
	}
}

// NewApp creates an App in the initial state
func NewApp(api API, opts ...AppOption) *App {
	a := &App{
		state: NewState(),
		api:   api,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a snapshot with expired banners dropped
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = a.state.Tick(a.now())
	return a.state.Clone()
}

// Update applies a transition that needs no network call
func (a *App) Update(fn func(State) State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = fn(a.state)
}

func (a *App) apply(fn func(State, time.Time) (State, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, err := fn(a.state, a.now())
	a.state = next
	return err
}

func (a *App) SetTranscript(text string) { a.Update(func(s State) State { return s.SetTranscript(text) }) }
func (a *App) SetPrompt(prompt string)   { a.Update(func(s State) State { return s.SetPrompt(prompt) }) }
func (a *App) SetSubject(subject string) { a.Update(func(s State) State { return s.SetSubject(subject) }) }
func (a *App) Clear()                    { a.Update(State.Clear) }
func (a *App) Edit()                     { a.Update(State.Edit) }
func (a *App) OpenEmail()                { a.Update(State.OpenEmail) }
func (a *App) CloseEmail()               { a.Update(State.CloseEmail) }

func (a *App) RemoveRecipient(addr string) {
	a.Update(func(s State) State { return s.RemoveRecipient(addr) })
}

// LoadTranscript replaces the transcript with the contents of r
func (a *App) LoadTranscript(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	a.SetTranscript(string(b))
	return nil
}

// SetText edits the generated summary
func (a *App) SetText(text string) error {
	return a.apply(func(s State, _ time.Time) (State, error) { return s.SetText(text) })
}

// Type feeds keystrokes into the recipient input
func (a *App) Type(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = a.state.Type(text, a.now())
}

// Generate requests a summary of the current transcript
func (a *App) Generate(ctx context.Context) (*summaryDTO.GenerateResponse, error) {
	var transcript, prompt string
	err := a.apply(func(s State, now time.Time) (State, error) {
		transcript, prompt = s.Transcript, s.Prompt
		return s.StartGenerate(now)
	})
	if err != nil {
		return nil, err
	}

	resp, err := a.api.Generate(ctx, transcript, prompt)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = a.state.GenerateFailed(a.now())
		return nil, err
	}
	a.state = a.state.GenerateSucceeded(resp.SummaryID, resp.Generated, a.now())
	return resp, nil
}

// Save persists the current text of the summary
func (a *App) Save(ctx context.Context) (*summaryDTO.SummaryResponse, error) {
	var id, text string
	err := a.apply(func(s State, now time.Time) (State, error) {
		id, text = s.SummaryID, s.Text
		return s.StartSave(now)
	})
	if err != nil {
		return nil, err
	}

	doc, err := a.api.Save(ctx, id, text)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = a.state.SaveFailed(a.now())
		return nil, err
	}
	a.state = a.state.SaveSucceeded(a.now())
	return doc, nil
}

// Fetch loads a stored summary into the form. A generate pending before or
// after the request makes it return ErrBusy without touching the form.
func (a *App) Fetch(ctx context.Context, id string) (*summaryDTO.SummaryResponse, error) {
	if a.loading() {
		return nil, ErrBusy
	}

	doc, err := a.api.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Loading {
		return nil, ErrBusy
	}
	s := a.state
	s.Transcript = doc.Transcript
	s.Prompt = doc.Prompt
	s.Text = doc.Edited
	s.SummaryID = doc.ID
	s.Phase = PhaseGenerated
	s.Editing = false
	a.state = s
	return doc, nil
}

func (a *App) loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Loading
}

// Send emails the current text to the pending recipients
func (a *App) Send(ctx context.Context) (*mailer.DeliveryInfo, error) {
	var to, subject, body string
	err := a.apply(func(s State, now time.Time) (State, error) {
		next, joined, err := s.StartSend(now)
		to, subject, body = joined, next.Subject, next.Text
		return next, err
	})
	if err != nil {
		return nil, err
	}

	info, err := a.api.SendEmail(ctx, to, subject, body)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = a.state.SendFailed(a.now())
		return nil, err
	}
	a.state = a.state.SendSucceeded(a.now())
	return info, nil
}
