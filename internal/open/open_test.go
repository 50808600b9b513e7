package open

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatcast/internal/parse"
)

func TestMessageLine(t *testing.T) {
	msgs := parse.Parse("preamble\nAnn, [1]\nhi\nBob, [2]:\nyo")

	line, err := MessageLine(msgs, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, line)

	_, err = MessageLine(msgs, 0)
	assert.Error(t, err)
	_, err = MessageLine(msgs, 3)
	assert.Error(t, err)
}

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+12", "chat.txt"}},
		{"code", []string{"code", "--goto", "chat.txt:12"}},
		{"less", []string{"less", "+12", "chat.txt"}},
		{"emacs", []string{"emacs", "chat.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			cmd := EditorCommand(tt.editor, "chat.txt", 12)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}
