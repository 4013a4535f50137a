package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Frame
	}{
		{
			name:  "register",
			input: `{"type":"register","userId":"alice"}`,
			want:  Register{UserID: "alice"},
		},
		{
			name:  "register missing userId",
			input: `{"type":"register"}`,
			want:  Invalid{Type: "register", Missing: "userId"},
		},
		{
			name:  "private message",
			input: `{"type":"private_message","from":"alice","to":"bob","message":"hi"}`,
			want:  PrivateMessage{From: "alice", To: "bob", Message: "hi"},
		},
		{
			name:  "private message missing to",
			input: `{"type":"private_message","from":"alice","message":"hi"}`,
			want:  Invalid{Type: "private_message", Missing: "to"},
		},
		{
			name:  "private message missing message",
			input: `{"type":"private_message","from":"alice","to":"bob"}`,
			want:  Invalid{Type: "private_message", Missing: "message"},
		},
		{
			name:  "global message",
			input: `{"type":"global_message","from":"alice","message":"hello all"}`,
			want:  GlobalMessage{From: "alice", Message: "hello all"},
		},
		{
			name:  "global message missing message",
			input: `{"type":"global_message","from":"alice"}`,
			want:  Invalid{Type: "global_message", Missing: "message"},
		},
		{
			name:  "global message without from is still valid",
			input: `{"type":"global_message","message":"anon"}`,
			want:  GlobalMessage{Message: "anon"},
		},
		{
			name:  "unrecognized type",
			input: `{"type":"dance"}`,
			want:  Unknown{Type: "dance"},
		},
		{
			name:  "missing type",
			input: `{"message":"hi"}`,
			want:  Unknown{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	got, err := Parse([]byte("not json"))
	assert.Error(t, err)
	assert.Nil(t, got)
}
