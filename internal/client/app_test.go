package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	summaryDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	emailuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/email"
	summaryuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/summary"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/mailer"
	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

type recordingCompleter struct {
	mu    sync.Mutex
	calls [][]pkgai.Message
	text  string
}

func (r *recordingCompleter) Complete(_ context.Context, msgs []pkgai.Message) (*pkgai.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, msgs)
	return &pkgai.Completion{Text: r.text, Model: "llama3-8b-8192"}, nil
}

func (r *recordingCompleter) Model() string { return "llama3-8b-8192" }

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (r *recordingDispatcher) Send(_ context.Context, msg mailer.Message) (*mailer.DeliveryInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return &mailer.DeliveryInfo{MessageID: "<e2e@test>", Accepted: msg.To}, nil
}

type apiServer struct {
	*httptest.Server
	completer  *recordingCompleter
	dispatcher *recordingDispatcher
	emailTo    []json.RawMessage
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	s := &apiServer{
		completer:  &recordingCompleter{text: "Title: Ship Friday\nAction Items:\n1. Ship - Alice - Friday"},
		dispatcher: &recordingDispatcher{},
	}

	v := pkgvalidator.New()
	e := echo.New()
	e.Validator = v
	handler.NewRouter(&config.Config{},
		handler.NewSummaryHandler(summaryuse.NewSummaryService(repository.NewMemorySummaryRepository(), s.completer, nil, nil), nil),
		handler.NewEmailHandler(emailuse.NewEmailService(s.dispatcher, v, nil, nil), nil),
		nil,
	).Setup(e)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/email/send" {
			b, _ := io.ReadAll(r.Body)
			var body struct {
				To json.RawMessage `json:"to"`
			}
			_ = json.Unmarshal(b, &body)
			s.emailTo = append(s.emailTo, body.To)
			r.Body = io.NopCloser(bytes.NewReader(b))
		}
		e.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestEndToEnd_GenerateEditSaveFetch(t *testing.T) {
	srv := newAPIServer(t)
	api := NewHTTPClient(srv.URL, nil)
	app := NewApp(api)
	ctx := context.Background()

	app.SetTranscript("Alice: let's ship Friday.")
	app.SetPrompt("")

	resp, err := app.Generate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, resp.SummaryID)

	require.Len(t, srv.completer.calls, 1)
	assert.Equal(t, summaryuse.DefaultSystemPrompt, srv.completer.calls[0][0].Content)

	st := app.State()
	assert.Equal(t, "generated(editing)", st.Status())
	assert.Equal(t, srv.completer.text, st.Text)

	require.NoError(t, app.SetText("Title: Ship Monday"))
	_, err = app.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, "generated(saved)", app.State().Status())

	doc, err := api.Fetch(ctx, resp.SummaryID)
	require.NoError(t, err)
	assert.Equal(t, "Title: Ship Monday", doc.Edited)
	assert.Equal(t, srv.completer.text, doc.Generated)
}

func TestEndToEnd_EmailTagAndSend(t *testing.T) {
	srv := newAPIServer(t)
	app := NewApp(NewHTTPClient(srv.URL, nil))
	ctx := context.Background()

	app.SetTranscript("Alice: let's ship Friday.")
	_, err := app.Generate(ctx)
	require.NoError(t, err)

	app.OpenEmail()
	app.Type("x@y.com ")

	st := app.State()
	assert.Equal(t, []string{"x@y.com"}, st.Recipients)
	assert.Empty(t, st.Input)

	info, err := app.Send(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<e2e@test>", info.MessageID)

	require.Len(t, srv.emailTo, 1)
	assert.JSONEq(t, `"x@y.com"`, string(srv.emailTo[0]))
	require.Len(t, srv.dispatcher.sent, 1)
	assert.Equal(t, []string{"x@y.com"}, srv.dispatcher.sent[0].To)
	assert.Equal(t, DefaultSubject, srv.dispatcher.sent[0].Subject)

	st = app.State()
	assert.False(t, st.EmailOpen)
	assert.Empty(t, st.Recipients)
}

func TestApp_SaveWithoutSummary(t *testing.T) {
	srv := newAPIServer(t)
	app := NewApp(NewHTTPClient(srv.URL, nil))

	_, err := app.Save(context.Background())
	require.ErrorIs(t, err, ErrNoSummary)
}

func TestApp_GenerateFailureShowsBanner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ok":false,"error":"Failed to generate summary","code":"AI_SUMMARY_FAILED"}`))
	}))
	defer srv.Close()

	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	app := NewApp(NewHTTPClient(srv.URL, nil), WithNow(func() time.Time { return now }))
	app.SetTranscript("t")

	_, err := app.Generate(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "AI_SUMMARY_FAILED", apiErr.Code)

	st := app.State()
	assert.Equal(t, "empty", st.Status())
	require.NotNil(t, st.Banner)
	assert.Equal(t, BannerError, st.Banner.Kind)

	now = now.Add(BannerTimeout)
	assert.Nil(t, app.State().Banner)
}

func TestApp_OneGenerateInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"summaryId":"1","generated":"g"}`))
	}))
	defer srv.Close()

	app := NewApp(NewHTTPClient(srv.URL, nil))
	app.SetTranscript("t")

	done := make(chan error, 1)
	go func() {
		_, err := app.Generate(context.Background())
		done <- err
	}()
	<-started

	_, err := app.Generate(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "1", app.State().SummaryID)
}

// gatedAPI blocks Generate until release is closed and runs onFetch inside
// Fetch
type gatedAPI struct {
	API
	started chan struct{}
	release chan struct{}
	fetches int
	onFetch func()
}

func (g *gatedAPI) Generate(context.Context, string, string) (*summaryDTO.GenerateResponse, error) {
	close(g.started)
	<-g.release
	return &summaryDTO.GenerateResponse{OK: true, SummaryID: "gen", Generated: "generated text"}, nil
}

func (g *gatedAPI) Fetch(_ context.Context, id string) (*summaryDTO.SummaryResponse, error) {
	g.fetches++
	if g.onFetch != nil {
		g.onFetch()
	}
	return &summaryDTO.SummaryResponse{ID: id, Edited: "stored text"}, nil
}

func TestApp_FetchRefusedWhileGenerating(t *testing.T) {
	api := &gatedAPI{started: make(chan struct{}), release: make(chan struct{})}
	app := NewApp(api)
	app.SetTranscript("t")

	done := make(chan error, 1)
	go func() {
		_, err := app.Generate(context.Background())
		done <- err
	}()
	<-api.started

	_, err := app.Fetch(context.Background(), "stored")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, api.fetches)

	close(api.release)
	require.NoError(t, <-done)
	st := app.State()
	assert.Equal(t, "gen", st.SummaryID)
	assert.Equal(t, "generated text", st.Text)
}

func TestApp_FetchDropsResultWhenGenerateStarts(t *testing.T) {
	api := &gatedAPI{started: make(chan struct{}), release: make(chan struct{})}
	app := NewApp(api)
	app.SetTranscript("t")

	done := make(chan error, 1)
	api.onFetch = func() {
		go func() {
			_, err := app.Generate(context.Background())
			done <- err
		}()
		<-api.started
	}

	_, err := app.Fetch(context.Background(), "stored")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, api.fetches)
	assert.NotEqual(t, "stored text", app.State().Text)

	close(api.release)
	require.NoError(t, <-done)
	assert.Equal(t, "gen", app.State().SummaryID)
}

func TestApp_LoadTranscript(t *testing.T) {
	app := NewApp(NewHTTPClient("", nil))
	require.NoError(t, app.LoadTranscript(strings.NewReader("Bob: hi")))
	assert.Equal(t, "Bob: hi", app.State().Transcript)
}

func TestHTTPClient_Ping(t *testing.T) {
	srv := newAPIServer(t)
	text, err := NewHTTPClient(srv.URL, nil).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, handler.LivenessText, text)
}
