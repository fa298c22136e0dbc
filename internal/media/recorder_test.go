package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	prev := lookPath
	lookPath = func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = prev })
}

func TestFindRecorderOrder(t *testing.T) {
	stubLookPath(t, "ffmpeg", "arecord")
	rc, err := findRecorder()
	assert.NoError(t, err)
	assert.Equal(t, "arecord", rc.bin)

	stubLookPath(t, "ffmpeg")
	rc, err = findRecorder()
	assert.NoError(t, err)
	assert.Equal(t, "ffmpeg", rc.bin)
}

func TestFindRecorderNoneInstalled(t *testing.T) {
	stubLookPath(t)
	_, err := findRecorder()
	assert.ErrorIs(t, err, ErrNoRecorder)
}

func TestStartWithoutRecorder(t *testing.T) {
	stubLookPath(t)
	r := NewRecorder()
	assert.ErrorIs(t, r.Start(t.Context()), ErrNoRecorder)
	assert.False(t, r.Recording())
}

func TestStopWithoutStart(t *testing.T) {
	_, err := NewRecorder().Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestLooksLikePermissionFailure(t *testing.T) {
	assert.True(t, looksLikePermissionFailure("arecord: main:830: audio open error: Device or resource busy"))
	assert.True(t, looksLikePermissionFailure("ALSA lib: cannot open device default"))
	assert.False(t, looksLikePermissionFailure("unexpected EOF"))
}

func TestPlayerWithoutPlayer(t *testing.T) {
	stubLookPath(t)
	p := NewPlayer()
	_, err := p.Play(WrapTTS(make([]byte, 10)))
	assert.ErrorIs(t, err, ErrNoPlayer)
	assert.False(t, p.Playing())
}
