package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNoRecorder means no supported capture tool is installed.
	ErrNoRecorder = errors.New("no audio recorder found (need arecord, sox or ffmpeg)")
	// ErrMicPermission means the device exists but could not be opened.
	ErrMicPermission = errors.New("microphone access denied")
	// ErrNotRecording is returned by Stop without a matching Start.
	ErrNotRecording = errors.New("not recording")
)

// recorderCommand describes one supported capture tool. Output path is
// appended last for every tool listed here.
type recorderCommand struct {
	bin  string
	args []string
}

var recorderCommands = []recorderCommand{
	{bin: "arecord", args: []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1"}},
	{bin: "rec", args: []string{"-q", "-r", "16000", "-c", "1"}},
	{bin: "ffmpeg", args: []string{"-loglevel", "quiet", "-f", "alsa", "-i", "default", "-ar", "16000", "-ac", "1", "-y"}},
}

// Recorder captures microphone audio to a temporary WAV file via the first
// available system recorder. One recording at a time.
type Recorder struct {
	cmd     *exec.Cmd
	outPath string
	stderr  *strings.Builder
}

// NewRecorder returns an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// findRecorder picks the first installed capture tool.
func findRecorder() (recorderCommand, error) {
	for _, rc := range recorderCommands {
		if _, err := lookPath(rc.bin); err == nil {
			return rc, nil
		}
	}
	return recorderCommand{}, ErrNoRecorder
}

// Start begins capturing. The recording runs until Stop.
func (r *Recorder) Start(ctx context.Context) error {
	if r.cmd != nil {
		return fmt.Errorf("already recording")
	}
	rc, err := findRecorder()
	if err != nil {
		return err
	}

	out := filepath.Join(os.TempDir(), fmt.Sprintf("lumina-rec-%d.wav", time.Now().UnixNano()))
	args := append(append([]string{}, rc.args...), out)
	cmd := exec.CommandContext(ctx, rc.bin, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", rc.bin, err)
	}
	r.cmd = cmd
	r.outPath = out
	r.stderr = &stderr
	return nil
}

// Recording reports whether a capture is in progress.
func (r *Recorder) Recording() bool {
	return r.cmd != nil
}

// Stop ends the capture and returns the recorded WAV bytes. Device or
// permission failures are mapped to ErrMicPermission so the UI can show the
// transient indicator.
func (r *Recorder) Stop() ([]byte, error) {
	if r.cmd == nil {
		return nil, ErrNotRecording
	}
	cmd, out, stderr := r.cmd, r.outPath, r.stderr
	r.cmd, r.outPath, r.stderr = nil, "", nil
	defer os.Remove(out)

	// Recorders flush and exit cleanly on SIGINT.
	_ = cmd.Process.Signal(os.Interrupt)
	err := cmd.Wait()

	data, readErr := os.ReadFile(out)
	if readErr != nil || len(data) == 0 {
		if err != nil && looksLikePermissionFailure(stderr.String()) {
			return nil, ErrMicPermission
		}
		if err != nil {
			return nil, fmt.Errorf("recorder failed: %w", err)
		}
		return nil, ErrMicPermission
	}
	if vErr := ValidateWAV(data); vErr != nil {
		return nil, fmt.Errorf("recorder output: %w", vErr)
	}
	return data, nil
}

func looksLikePermissionFailure(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "permission") ||
		strings.Contains(s, "busy") ||
		strings.Contains(s, "cannot open") ||
		strings.Contains(s, "no such device")
}
