package client

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"
)

const (
	DefaultPrompt  = "Summarize in bullet points for executives"
	DefaultSubject = "Meeting Summary"
	// BannerTimeout is how long a status banner stays visible
	BannerTimeout = 5 * time.Second
)

// Transition errors. ErrBusy and ErrNotEditing leave the state untouched,
// the rest also raise an error banner.
var (
	ErrBusy             = errors.New("request already in flight")
	ErrNoTranscript     = errors.New("transcript is empty")
	ErrNoSummary        = errors.New("no summary to save")
	ErrNoRecipients     = errors.New("no recipients")
	ErrInvalidRecipient = errors.New("invalid email format")
	ErrNotEditing       = errors.New("summary is read-only; press Edit first")
)

// Banner texts
const (
	msgNoTranscript  = "Please provide a transcript to summarize."
	msgNoSummary     = "No summary to save yet."
	msgNoRecipients  = "Please enter at least one recipient email address."
	msgGenerated     = "Summary generated successfully!"
	msgGenerateError = "Error generating summary. Please try again."
	msgSaved         = "Summary saved."
	msgSaveError     = "Error saving summary. Please try again."
	msgSent          = "Email sent successfully!"
	msgSendError     = "Email failed to send. Please check the recipient(s)."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has a basic local@domain.tld shape
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Phase is where the generated summary is in its lifecycle
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseGenerating
	PhaseGenerated
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseGenerated:
		return "generated"
	default:
		return "empty"
	}
}

type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the single transient status message
type Banner struct {
	Kind      BannerKind
	Text      string
	ExpiresAt time.Time
}

// State is the whole client form. Transitions are value methods that
// return the next state and never mutate the receiver.
type State struct {
	Transcript string
	Prompt     string
	// Text is the generated summary as currently edited
	Text      string
	SummaryID string
	Phase     Phase
	Editing   bool

	Loading bool
	Saving  bool
	Sending bool

	Banner *Banner

	EmailOpen  bool
	Recipients []string
	Input      string
	Subject    string
}

// NewState returns the initial form
func NewState() State {
	return State{
		Prompt:  DefaultPrompt,
		Subject: DefaultSubject,
		Editing: true,
	}
}

// Clone returns a copy that shares no memory with s
func (s State) Clone() State {
	s.Recipients = slices.Clone(s.Recipients)
	if s.Banner != nil {
		b := *s.Banner
		s.Banner = &b
	}
	return s
}

// Status renders the lifecycle position, e.g. "generated(editing)"
func (s State) Status() string {
	if s.Phase != PhaseGenerated {
		return s.Phase.String()
	}
	if s.Editing {
		return "generated(editing)"
	}
	return "generated(saved)"
}

func (s State) withBanner(kind BannerKind, text string, now time.Time) State {
	s.Banner = &Banner{Kind: kind, Text: text, ExpiresAt: now.Add(BannerTimeout)}
	return s
}

// VisibleBanner returns the banner if it has not expired at now
func (s State) VisibleBanner(now time.Time) (Banner, bool) {
	if s.Banner == nil || !now.Before(s.Banner.ExpiresAt) {
		return Banner{}, false
	}
	return *s.Banner, true
}

// Tick drops an expired banner
func (s State) Tick(now time.Time) State {
	if s.Banner != nil && !now.Before(s.Banner.ExpiresAt) {
		s.Banner = nil
	}
	return s
}

func (s State) SetTranscript(text string) State {
	s.Transcript = text
	return s
}

func (s State) SetPrompt(prompt string) State {
	s.Prompt = prompt
	return s
}

func (s State) SetSubject(subject string) State {
	s.Subject = subject
	return s
}

// Clear resets the transcript and the generated summary
func (s State) Clear() State {
	s.Transcript = ""
	s.Text = ""
	s.SummaryID = ""
	s.Phase = PhaseEmpty
	s.Editing = true
	return s
}

// StartGenerate moves to generating. Blank transcripts are rejected with a
// banner.
func (s State) StartGenerate(now time.Time) (State, error) {
	if s.Loading {
		return s, ErrBusy
	}
	if strings.TrimSpace(s.Transcript) == "" {
		return s.withBanner(BannerError, msgNoTranscript, now), ErrNoTranscript
	}
	s.Loading = true
	s.Phase = PhaseGenerating
	s.Text = ""
	s.SummaryID = ""
	return s, nil
}

func (s State) GenerateSucceeded(id, text string, now time.Time) State {
	s.Loading = false
	s.Phase = PhaseGenerated
	s.Text = text
	s.SummaryID = id
	s.Editing = true
	return s.withBanner(BannerSuccess, msgGenerated, now)
}

func (s State) GenerateFailed(now time.Time) State {
	s.Loading = false
	s.Phase = PhaseEmpty
	return s.withBanner(BannerError, msgGenerateError, now)
}

// SetText edits the summary; only allowed while editing
func (s State) SetText(text string) (State, error) {
	if s.Phase != PhaseGenerated || !s.Editing {
		return s, ErrNotEditing
	}
	s.Text = text
	return s, nil
}

// Edit returns a saved summary to editing
func (s State) Edit() State {
	if s.Phase == PhaseGenerated {
		s.Editing = true
	}
	return s
}

func (s State) StartSave(now time.Time) (State, error) {
	if s.Saving {
		return s, ErrBusy
	}
	if s.SummaryID == "" {
		return s.withBanner(BannerError, msgNoSummary, now), ErrNoSummary
	}
	s.Saving = true
	return s, nil
}

func (s State) SaveSucceeded(now time.Time) State {
	s.Saving = false
	s.Editing = false
	return s.withBanner(BannerSuccess, msgSaved, now)
}

// SaveFailed keeps the unsaved edit in place
func (s State) SaveFailed(now time.Time) State {
	s.Saving = false
	return s.withBanner(BannerError, msgSaveError, now)
}

func (s State) OpenEmail() State {
	if s.Phase == PhaseGenerated {
		s.EmailOpen = true
	}
	return s
}

// CloseEmail hides the modal and keeps pending tags
func (s State) CloseEmail() State {
	s.EmailOpen = false
	return s
}

func isSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '\n' || r == '\r'
}

// Type feeds keystrokes into the recipient input. Space, comma and Enter
// commit the buffer as a tag instead of being inserted.
func (s State) Type(text string, now time.Time) State {
	for _, r := range text {
		if isSeparator(r) {
			s, _ = s.CommitInput(now)
			continue
		}
		s.Input += string(r)
	}
	return s
}

// CommitInput turns the buffer into a tag. Invalid addresses stay in the
// buffer and raise a banner; duplicates are ignored.
func (s State) CommitInput(now time.Time) (State, error) {
	addr := strings.TrimSpace(s.Input)
	if addr == "" || slices.Contains(s.Recipients, addr) {
		return s, nil
	}
	if !ValidEmail(addr) {
		s.Input = addr
		return s.withBanner(BannerError, "Invalid email format: "+addr, now), ErrInvalidRecipient
	}
	s.Recipients = append(slices.Clone(s.Recipients), addr)
	s.Input = ""
	return s, nil
}

func (s State) RemoveRecipient(addr string) State {
	s.Recipients = slices.DeleteFunc(slices.Clone(s.Recipients), func(r string) bool { return r == addr })
	return s
}

// StartSend commits leftover input and returns the recipients joined for
// the request
func (s State) StartSend(now time.Time) (State, string, error) {
	if s.Sending {
		return s, "", ErrBusy
	}
	if strings.TrimSpace(s.Input) != "" {
		var err error
		if s, err = s.CommitInput(now); err != nil {
			return s, "", err
		}
	}
	if len(s.Recipients) == 0 {
		return s.withBanner(BannerError, msgNoRecipients, now), "", ErrNoRecipients
	}
	s.Sending = true
	return s, strings.Join(s.Recipients, ", "), nil
}

func (s State) SendSucceeded(now time.Time) State {
	s.Sending = false
	s.EmailOpen = false
	s.Recipients = nil
	s.Input = ""
	return s.withBanner(BannerSuccess, msgSent, now)
}

func (s State) SendFailed(now time.Time) State {
	s.Sending = false
	return s.withBanner(BannerError, msgSendError, now)
}
