package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func generated() State {
	s := NewState().SetTranscript("Alice: let's ship Friday.")
	s, _ = s.StartGenerate(t0)
	return s.GenerateSucceeded("id-1", "Title: Ship Friday", t0)
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, DefaultPrompt, s.Prompt)
	assert.Equal(t, DefaultSubject, s.Subject)
	assert.Equal(t, "empty", s.Status())
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.com"))
	assert.False(t, ValidEmail("@b.com"))
}

func TestCommitInput_AcceptsValidAddress(t *testing.T) {
	s := generated().OpenEmail()
	s.Input = "a@b.com"

	s, err := s.CommitInput(t0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com"}, s.Recipients)
	assert.Empty(t, s.Input)
}

func TestCommitInput_RejectsAndKeepsBuffer(t *testing.T) {
	s := generated().OpenEmail()
	s.Input = "not-an-email"

	s, err := s.CommitInput(t0)
	require.ErrorIs(t, err, ErrInvalidRecipient)
	assert.Empty(t, s.Recipients)
	assert.Equal(t, "not-an-email", s.Input)

	b, ok := s.VisibleBanner(t0)
	require.True(t, ok)
	assert.Equal(t, BannerError, b.Kind)
	assert.Equal(t, "Invalid email format: not-an-email", b.Text)
}

func TestCommitInput_DuplicateIsNoop(t *testing.T) {
	s := generated().OpenEmail().Type("a@b.com,", t0)
	require.Equal(t, []string{"a@b.com"}, s.Recipients)

	before := s.Type("a@b.com", t0)
	after, err := before.CommitInput(t0)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"a@b.com"}, after.Recipients)
}

func TestType_Separators(t *testing.T) {
	s := generated().OpenEmail().Type("a@b.com c@d.io,e@f.org\n", t0)
	assert.Equal(t, []string{"a@b.com", "c@d.io", "e@f.org"}, s.Recipients)
	assert.Empty(t, s.Input)

	s = s.Type("partial@", t0)
	assert.Equal(t, "partial@", s.Input)
}

func TestRemoveRecipient(t *testing.T) {
	s := generated().Type("a@b.com b@c.com ", t0)
	trimmed := s.RemoveRecipient("a@b.com")
	assert.Equal(t, []string{"b@c.com"}, trimmed.Recipients)
	assert.Equal(t, []string{"a@b.com", "b@c.com"}, s.Recipients)
}

func TestStartSend(t *testing.T) {
	t.Run("leftover input is committed", func(t *testing.T) {
		s := generated().OpenEmail().Type("a@b.com x@y.com", t0)
		s, to, err := s.StartSend(t0)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com, x@y.com", to)
		assert.True(t, s.Sending)
	})

	t.Run("invalid leftover aborts", func(t *testing.T) {
		s := generated().OpenEmail().Type("a@b.com nope", t0)
		s, _, err := s.StartSend(t0)
		require.ErrorIs(t, err, ErrInvalidRecipient)
		assert.False(t, s.Sending)
		assert.Equal(t, "nope", s.Input)
	})

	t.Run("no recipients", func(t *testing.T) {
		s, _, err := generated().OpenEmail().StartSend(t0)
		require.ErrorIs(t, err, ErrNoRecipients)
		b, ok := s.VisibleBanner(t0)
		require.True(t, ok)
		assert.Equal(t, "Please enter at least one recipient email address.", b.Text)
	})

	t.Run("busy", func(t *testing.T) {
		s := generated().Type("a@b.com ", t0)
		s, _, err := s.StartSend(t0)
		require.NoError(t, err)
		_, _, err = s.StartSend(t0)
		assert.ErrorIs(t, err, ErrBusy)
	})
}

func TestSendSucceeded_ClosesModal(t *testing.T) {
	s := generated().OpenEmail().Type("a@b.com ", t0)
	s, _, _ = s.StartSend(t0)
	s = s.SendSucceeded(t0)

	assert.False(t, s.EmailOpen)
	assert.False(t, s.Sending)
	assert.Empty(t, s.Recipients)
	assert.Empty(t, s.Input)
}

func TestSendFailed_KeepsTags(t *testing.T) {
	s := generated().OpenEmail().Type("a@b.com ", t0)
	s, _, _ = s.StartSend(t0)
	s = s.SendFailed(t0)

	assert.True(t, s.EmailOpen)
	assert.Equal(t, []string{"a@b.com"}, s.Recipients)
	b, _ := s.VisibleBanner(t0)
	assert.Equal(t, BannerError, b.Kind)
}

func TestGenerateLifecycle(t *testing.T) {
	s := NewState()
	_, err := s.StartGenerate(t0)
	require.ErrorIs(t, err, ErrNoTranscript)

	s = s.SetTranscript("t")
	s, err = s.StartGenerate(t0)
	require.NoError(t, err)
	assert.Equal(t, "generating", s.Status())
	assert.True(t, s.Loading)

	_, err = s.StartGenerate(t0)
	assert.ErrorIs(t, err, ErrBusy)

	failed := s.GenerateFailed(t0)
	assert.Equal(t, "empty", failed.Status())
	assert.False(t, failed.Loading)

	ok := s.GenerateSucceeded("id", "text", t0)
	assert.Equal(t, "generated(editing)", ok.Status())
	assert.Equal(t, "text", ok.Text)
}

func TestStartGenerate_ClearsPrevious(t *testing.T) {
	s, err := generated().StartGenerate(t0)
	require.NoError(t, err)
	assert.Empty(t, s.Text)
	assert.Empty(t, s.SummaryID)
}

func TestEditSaveToggle(t *testing.T) {
	s := generated()

	s, err := s.SetText("edited")
	require.NoError(t, err)

	s, err = s.StartSave(t0)
	require.NoError(t, err)
	s = s.SaveSucceeded(t0)
	assert.Equal(t, "generated(saved)", s.Status())

	_, err = s.SetText("blocked")
	assert.ErrorIs(t, err, ErrNotEditing)

	s = s.Edit()
	assert.Equal(t, "generated(editing)", s.Status())
}

func TestStartSave_NoSummary(t *testing.T) {
	s, err := NewState().StartSave(t0)
	require.ErrorIs(t, err, ErrNoSummary)
	b, ok := s.VisibleBanner(t0)
	require.True(t, ok)
	assert.Equal(t, "No summary to save yet.", b.Text)
}

func TestSaveFailed_KeepsEdit(t *testing.T) {
	s, _ := generated().SetText("unsaved")
	s, _ = s.StartSave(t0)
	s = s.SaveFailed(t0)
	assert.Equal(t, "unsaved", s.Text)
	assert.Equal(t, "generated(editing)", s.Status())
}

func TestClear(t *testing.T) {
	s := generated().Clear()
	assert.Empty(t, s.Transcript)
	assert.Empty(t, s.Text)
	assert.Empty(t, s.SummaryID)
	assert.Equal(t, "empty", s.Status())
	assert.Equal(t, DefaultPrompt, s.Prompt)
}

func TestBanner_ExpiresAndIsReplaced(t *testing.T) {
	s := generated()
	_, ok := s.VisibleBanner(t0.Add(BannerTimeout - time.Millisecond))
	assert.True(t, ok)
	_, ok = s.VisibleBanner(t0.Add(BannerTimeout))
	assert.False(t, ok)
	assert.Nil(t, s.Tick(t0.Add(BannerTimeout)).Banner)

	later := t0.Add(3 * time.Second)
	s, _ = s.StartSave(later)
	s = s.SaveFailed(later)
	b, ok := s.VisibleBanner(t0.Add(BannerTimeout + time.Second))
	require.True(t, ok)
	assert.Equal(t, "Error saving summary. Please try again.", b.Text)
}
