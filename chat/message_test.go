package chat

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"user", RoleUser},
		{" User ", RoleUser},
		{"assistant", RoleAssistant},
		{"system", RoleOther},
		{"", RoleOther},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseRole(tc.in), "ParseRole(%q)", tc.in)
	}
}

func TestNewMessageAssignsID(t *testing.T) {
	a := NewMessage(RoleUser, "hi", "c1")
	b := NewMessage(RoleUser, "hi", "c1")
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "user", a.RawRole)
	assert.True(t, a.IsUser())
}

func TestMessageTextTrims(t *testing.T) {
	m := NewMessage(RoleAssistant, "\n\t  hello world \n", "")
	assert.Equal(t, "hello world", m.Text())
}

func TestDecodeTranscriptArray(t *testing.T) {
	in := `[
		{"role":"user","content":"hi","conversation_id":"c"},
		{"role":"assistant","content":"# hello"},
		{"role":"tool","content":"ran"}
	]`
	msgs, err := DecodeTranscript(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "c", msgs[0].ConversationID)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, RoleOther, msgs[2].Role)
	assert.Equal(t, "tool", msgs[2].RawRole)
}

func TestDecodeTranscriptLines(t *testing.T) {
	id := uuid.New()
	in := `{"role":"user","content":"one"}

{"id":"` + id.String() + `","role":"assistant","content":"two"}
`
	msgs, err := DecodeTranscript(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, id, msgs[1].ID)
}

func TestDecodeTranscriptErrors(t *testing.T) {
	_, err := DecodeTranscript(strings.NewReader("   "))
	assert.True(t, errors.Is(err, ErrEmptyTranscript))

	_, err = DecodeTranscript(strings.NewReader("[]"))
	assert.True(t, errors.Is(err, ErrEmptyTranscript))

	_, err = DecodeTranscript(strings.NewReader("{\"role\":\"user\"}\nnot json\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = DecodeTranscript(strings.NewReader(`[{"id":"nope","role":"user","content":"x"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid message id")
}
