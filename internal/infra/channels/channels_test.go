package channels

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonChannels = `{
  "channels": [
    {
      "channel_id": "groovesalad",
      "title": "Groove Salad",
      "cover": "https://example.com/groovesalad.png",
      "artist": "Rusty Hodge",
      "stream_url": "https://example.com/groovesalad.mp3",
      "name": "A nicely chilled plate of ambient beats"
    },
    {
      "channel_id": "dronezone",
      "title": "Drone Zone",
      "duration": 3600,
      "published_at": "2026-10-01T12:00:00Z"
    }
  ]
}`

const yamlChannels = `
channels:
  - channel_id: lush
    title: Lush
    artist: Various
    stream_url: https://example.com/lush.mp3
`

func TestParse(t *testing.T) {
	records, err := Parse([]byte(jsonChannels), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "groovesalad", records[0].ChannelID)
	assert.Equal(t, "Groove Salad", records[0].Title)
	assert.Equal(t, "Rusty Hodge", records[0].Artist)
	assert.Equal(t, "https://example.com/groovesalad.mp3", records[0].StreamURL)
	assert.Equal(t, "A nicely chilled plate of ambient beats", records[0].Name)
	assert.Equal(t, int64(3600), records[1].Duration)
	assert.Equal(t, "2026-10-01T12:00:00Z", records[1].PublishedAt)

	records, err = Parse([]byte(yamlChannels), FormatYAML)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "lush", records[0].ChannelID)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("channels: [unterminated"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("{}"), Format("xml"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonChannels), 0o644))
	records, err := ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	yamlPath := filepath.Join(dir, "traffic.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlChannels), 0o644))
	records, err = ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonChannels), 0o644))

	var calls atomic.Int32
	w, err := Watch(path, 20*time.Millisecond, func() {
		calls.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[]}`), 0o644))

	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonChannels), 0o644))

	w, err := Watch(path, time.Second, func() {})
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatch_CloseWaitsForRunningCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonChannels), 0o644))

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	var calls atomic.Int32
	w, err := Watch(path, 10*time.Millisecond, func() {
		calls.Add(1)
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[]}`), 0o644))
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}

	closed := make(chan struct{})
	go func() {
		_ = w.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after the callback finished")
	}

	// No callback fires once Close has returned.
	after := calls.Load()
	require.NoError(t, os.WriteFile(path, []byte(jsonChannels), 0o644))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestWatch_CloseDropsPendingCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonChannels), 0o644))

	var calls atomic.Int32
	w, err := Watch(path, time.Hour, func() {
		calls.Add(1)
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"channels":[]}`), 0o644))
	require.Eventually(t, func() bool {
		w.timerMu.Lock()
		defer w.timerMu.Unlock()
		return w.timer != nil
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, w.Close())
	assert.Equal(t, int32(0), calls.Load())
}
