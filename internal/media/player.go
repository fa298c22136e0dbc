package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ErrNoPlayer means no supported playback tool is installed.
var ErrNoPlayer = errors.New("no audio player found (need aplay, play or ffplay)")

var playerCommands = []recorderCommand{
	{bin: "aplay", args: []string{"-q"}},
	{bin: "play", args: []string{"-q"}},
	{bin: "ffplay", args: []string{"-loglevel", "quiet", "-autoexit", "-nodisp"}},
}

// Player plays WAV clips through the first available system player. Starting
// a new clip stops the previous one (stop-on-supersede).
type Player struct {
	cmd  *exec.Cmd
	file string
}

// NewPlayer returns an idle player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts playback of the WAV data and returns immediately. done is
// closed when playback finishes or is stopped.
func (p *Player) Play(wav []byte) (done <-chan struct{}, err error) {
	p.Stop()

	var pc recorderCommand
	found := false
	for _, c := range playerCommands {
		if _, err := lookPath(c.bin); err == nil {
			pc, found = c, true
			break
		}
	}
	if !found {
		return nil, ErrNoPlayer
	}

	file := filepath.Join(os.TempDir(), fmt.Sprintf("lumina-tts-%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(file, wav, 0600); err != nil {
		return nil, fmt.Errorf("write clip: %w", err)
	}

	cmd := exec.Command(pc.bin, append(append([]string{}, pc.args...), file)...)
	if err := cmd.Start(); err != nil {
		os.Remove(file)
		return nil, fmt.Errorf("start %s: %w", pc.bin, err)
	}
	p.cmd, p.file = cmd, file

	ch := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		os.Remove(file)
		close(ch)
	}()
	return ch, nil
}

// Playing reports whether a clip is currently playing.
func (p *Player) Playing() bool {
	return p.cmd != nil && p.cmd.ProcessState == nil
}

// Stop kills any in-flight playback.
func (p *Player) Stop() {
	if p.cmd != nil && p.cmd.Process != nil && p.cmd.ProcessState == nil {
		_ = p.cmd.Process.Kill()
	}
	p.cmd, p.file = nil, ""
}
