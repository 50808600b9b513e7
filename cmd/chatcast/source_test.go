package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ann, [1.1.24 10:00]\nhi\n"), 0o644))

	load, title, err := transcriptSource([]string{path}, false)
	require.NoError(t, err)
	assert.Equal(t, "chat.txt", title)

	msgs, err := load()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ann", msgs[0].Sender)
	assert.Equal(t, "hi\n", msgs[0].Text)
}

func TestTranscriptSource_Errors(t *testing.T) {
	_, _, err := transcriptSource(nil, false)
	assert.Error(t, err)

	_, _, err = transcriptSource([]string{"a.txt"}, true)
	assert.Error(t, err)
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "Ann", orDash("Ann"))
}
