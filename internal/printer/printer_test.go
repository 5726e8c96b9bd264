package printer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false)

	p.PrintDir("/home/u/app/node_modules", ".deja-dup-ignore")
	p.PrintDir("/home/u/app/generated", "")

	assert.Equal(t, "/home/u/app/node_modules [.deja-dup-ignore]\n/home/u/app/generated\n", buf.String())
	assert.Equal(t, int64(2), p.GetCount())
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true)

	p.PrintDir("/a/target", ".deja-dup-ignore")
	p.PrintDir("/a/other", "")
	p.Finalize()

	var entries []JSONDirEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, []JSONDirEntry{
		{Path: "/a/target", Marker: ".deja-dup-ignore"},
		{Path: "/a/other"},
	}, entries)
}

func TestJSONOutputEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true)
	p.Finalize()

	var entries []JSONDirEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestMarkdownOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithMarkdown(true)

	p.PrintDir("/a/.cache", "CACHEDIR.TAG")
	p.PrintDir("/a/gen", "")
	p.Finalize()

	assert.Equal(t, "- `/a/.cache` (CACHEDIR.TAG)\n- `/a/gen`\n", buf.String())
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestJSONMarshalErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := &recordingLogger{}
	p := New().WithOutput(&buf).WithJSON(true).WithLogger(log)
	p.marshal = func(any) ([]byte, error) { return nil, errors.New("unsupported value") }

	p.PrintDir("/a/target", ".deja-dup-ignore")
	p.Finalize()

	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "/a/target")
	assert.Contains(t, log.errors[0], "unsupported value")
	assert.Equal(t, "[]\n", buf.String())
	assert.Zero(t, p.GetCount())
}
