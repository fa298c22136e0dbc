package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/logging"
	"github.com/younglord3302/Lumina/internal/media"
)

// Transcribe converts a WAV recording to text with the fast model.
func (c *Client) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if err := media.ValidateWAV(wav); err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(wav, "audio/wav"),
			genai.NewPartFromText("Transcribe this audio exactly. Output the transcription only."),
		}, genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.FastModelName(), contents, nil)
	if err != nil {
		return "", classify(err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("no speech detected")
	}
	return text, nil
}

// Speak renders text as speech and returns a playable WAV clip.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	voice := c.cfg.TTSVoice
	if voice == "" {
		voice = "Kore"
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.TTSModelName(),
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
				},
			},
		})
	if err != nil {
		return nil, classify(err)
	}

	pcm := audioData(resp)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio returned by %s", c.cfg.TTSModelName())
	}
	c.log.Debug("speech rendered",
		zap.String("category", logging.CategoryGateway),
		zap.Int("pcm_bytes", len(pcm)), zap.String("voice", voice))

	// The TTS models return raw PCM16 frames without a container.
	return media.WrapTTS(pcm), nil
}

// audioData pulls the first inline audio blob out of a response.
func audioData(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
