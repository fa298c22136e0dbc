package shop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/gateway"
	"github.com/younglord3302/Lumina/internal/logging"
	"github.com/younglord3302/Lumina/internal/media"
)

// gatewayTimeout bounds every one-shot AI call made from the TUI.
const gatewayTimeout = 2 * time.Minute

// videoTimeout covers the full render poll loop.
const videoTimeout = 10 * time.Minute

type justAddedExpiredMsg struct{ gen int }

type micDeniedExpiredMsg struct{ gen int }

type chatReplyMsg struct {
	reply string
	err   error
}

type transcriptMsg struct {
	text string
	err  error
}

type speechDoneMsg struct{ err error }

type enhancedMsg struct {
	productID int
	text      string
}

type videoDoneMsg struct {
	productID int
	path      string
	uri       string
	err       error
}

// expireJustAdded clears the "added to bag" marker unless a newer add
// superseded this timer.
func expireJustAdded(gen int) tea.Cmd {
	return tea.Tick(justAddedDuration, func(time.Time) tea.Msg {
		return justAddedExpiredMsg{gen: gen}
	})
}

func expireMicDenied(gen int) tea.Cmd {
	return tea.Tick(micDeniedDuration, func(time.Time) tea.Msg {
		return micDeniedExpiredMsg{gen: gen}
	})
}

// sendChat submits one assistant turn off the UI goroutine.
func (m *Model) sendChat(text string) tea.Cmd {
	chat := m.chat
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		reply, err := chat.Send(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// stopAndTranscribe ends the recording and turns it into chat input text.
func (m *Model) stopAndTranscribe() tea.Cmd {
	rec, gw := m.recorder, m.gw
	return func() tea.Msg {
		wav, err := rec.Stop()
		if err != nil {
			return transcriptMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		text, err := gw.Transcribe(ctx, wav)
		return transcriptMsg{text: text, err: err}
	}
}

// speak renders the text with the TTS model and plays it.
func (m *Model) speak(text string) tea.Cmd {
	gw, player := m.gw, m.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		wav, err := gw.Speak(ctx, text)
		if err != nil {
			return speechDoneMsg{err: err}
		}
		done, err := player.Play(wav)
		if err != nil {
			return speechDoneMsg{err: err}
		}
		<-done
		return speechDoneMsg{}
	}
}

// enhance fetches richer marketing copy for the detail view.
func (m *Model) enhance(p catalog.Product) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), gatewayTimeout)
		defer cancel()
		return enhancedMsg{productID: p.ID, text: gw.EnhanceDescription(ctx, p)}
	}
}

// renderShowcase kicks off the 360-degree render. On a credential rejection
// the config file is re-read once in case the key was rotated, and the render
// retried with a fresh client.
func (m *Model) renderShowcase(p catalog.Product) tea.Cmd {
	gw, log := m.gw, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), videoTimeout)
		defer cancel()

		// The catalog photo guides the render; a fetch failure degrades
		// to a text-only prompt rather than failing the whole request.
		var ref []byte
		var refMime string
		if p.Image != "" {
			if data, mt, ferr := gateway.FetchImage(ctx, p.Image); ferr == nil {
				ref, refMime = data, mt
			} else {
				log.Warn("reference image fetch failed",
					zap.String("category", logging.CategoryGateway), zap.Error(ferr))
			}
		}

		res, err := gw.GenerateShowcaseVideo(ctx, p, ref, refMime)
		if errors.Is(err, gateway.ErrEntityNotFound) {
			log.Warn("render rejected, refreshing credentials",
				zap.String("category", logging.CategoryGateway), zap.Error(err))
			if fresh := refreshedClient(ctx, log); fresh != nil {
				res, err = fresh.GenerateShowcaseVideo(ctx, p, ref, refMime)
			}
		}
		if err != nil {
			return videoDoneMsg{productID: p.ID, err: err}
		}

		if len(res.Bytes) > 0 {
			path, werr := saveVideo(p.ID, res.Bytes)
			if werr != nil {
				return videoDoneMsg{productID: p.ID, err: werr}
			}
			return videoDoneMsg{productID: p.ID, path: path}
		}
		return videoDoneMsg{productID: p.ID, uri: res.URI}
	}
}

// refreshedClient reloads the config and dials a new gateway client, or nil
// when that fails.
func refreshedClient(ctx context.Context, log *zap.Logger) *gateway.Client {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil || cfg.APIKey == "" {
		return nil
	}
	fresh, err := gateway.New(ctx, cfg, log)
	if err != nil {
		return nil
	}
	return fresh
}

// saveVideo writes the rendered clip under the config dir.
func saveVideo(productID int, data []byte) (string, error) {
	dir := filepath.Join(config.Dir(), "videos")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("product-%d.mp4", productID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// noKeyStatus is shown when an AI feature is used without a configured key.
const noKeyStatus = "AI features need an API key: set GEMINI_API_KEY and restart"

// errIsMicPermission reports whether the transcription failure was a device
// problem rather than an API one.
func errIsMicPermission(err error) bool {
	return errors.Is(err, media.ErrMicPermission) || errors.Is(err, media.ErrNoRecorder)
}
