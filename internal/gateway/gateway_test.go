package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/media"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

// stubModels scripts GenerateContent responses and records requests.
type stubModels struct {
	mu       sync.Mutex
	requests []stubRequest
	reply    func(call int) (*genai.GenerateContentResponse, error)
	calls    int
	block    chan struct{}
	entered  chan struct{}
}

type stubRequest struct {
	model    string
	contents []*genai.Content
	cfg      *genai.GenerateContentConfig
}

func (s *stubModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if s.entered != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	s.requests = append(s.requests, stubRequest{model: model, contents: contents, cfg: cfg})
	call := s.calls
	s.calls++
	s.mu.Unlock()
	return s.reply(call)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func audioResponse(pcm []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{MIMEType: "audio/L16;rate=24000", Data: pcm},
			}}},
		}},
	}
}

func newTestClient(t *testing.T, models contentGenerator, video videoGenerator) *Client {
	t.Helper()
	return &Client{
		cfg:          &config.Config{APIKey: "test", VideoMaxPolls: 3},
		log:          zap.NewNop(),
		models:       models,
		video:        video,
		pollInterval: time.Millisecond,
	}
}

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Load()
	require.NoError(t, err)
	return store
}

func TestChatSendAndHistory(t *testing.T) {
	stub := &stubModels{reply: func(call int) (*genai.GenerateContentResponse, error) {
		return textResponse(fmt.Sprintf("reply %d", call)), nil
	}}
	c := newTestClient(t, stub, nil)
	ch := c.NewChat(testStore(t))

	reply, err := ch.Send(t.Context(), "any headphones?")
	require.NoError(t, err)
	assert.Equal(t, "reply 0", reply)
	assert.Equal(t, 2, ch.Len())

	_, err = ch.Send(t.Context(), "and a lamp?")
	require.NoError(t, err)
	assert.Equal(t, 4, ch.Len())

	// Second request carries the full history plus the new turn.
	assert.Len(t, stub.requests[1].contents, 3)
}

func TestChatSystemInstructionCarriesCatalog(t *testing.T) {
	stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
		return textResponse("ok"), nil
	}}
	c := newTestClient(t, stub, nil)
	ch := c.NewChat(testStore(t))

	_, err := ch.Send(t.Context(), "hi")
	require.NoError(t, err)

	require.NotNil(t, stub.requests[0].cfg)
	sys := stub.requests[0].cfg.SystemInstruction.Parts[0].Text
	assert.Contains(t, sys, "Lumina Alpha Headphones")
	assert.Contains(t, sys, "$349.00")
}

func TestChatBusyRejectsConcurrentSend(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{}, 1)
	stub := &stubModels{
		block:   block,
		entered: entered,
		reply: func(int) (*genai.GenerateContentResponse, error) {
			return textResponse("slow reply"), nil
		},
	}
	c := newTestClient(t, stub, nil)
	ch := c.NewChat(testStore(t))

	done := make(chan error, 1)
	go func() {
		_, err := ch.Send(t.Context(), "first")
		done <- err
	}()

	// Wait until the first send holds the semaphore.
	<-entered
	_, err := ch.Send(t.Context(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(block)
	require.NoError(t, <-done)
}

func TestChatFailedSendKeepsHistoryClean(t *testing.T) {
	stub := &stubModels{reply: func(call int) (*genai.GenerateContentResponse, error) {
		if call == 0 {
			return nil, errors.New("boom")
		}
		return textResponse("recovered"), nil
	}}
	c := newTestClient(t, stub, nil)
	ch := c.NewChat(testStore(t))

	_, err := ch.Send(t.Context(), "hello")
	require.Error(t, err)
	assert.Equal(t, 0, ch.Len())

	reply, err := ch.Send(t.Context(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "recovered", reply)
	assert.Len(t, stub.requests[1].contents, 1)
}

func TestEnhanceDescriptionFallsBack(t *testing.T) {
	stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota exceeded")
	}}
	c := newTestClient(t, stub, nil)
	store := testStore(t)
	p, _ := store.ByID(1)

	got := c.EnhanceDescription(t.Context(), p)
	assert.Equal(t, fallbackDescription, got)
}

func TestEnhanceDescriptionUsesReply(t *testing.T) {
	stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
		return textResponse("A luminous marvel."), nil
	}}
	c := newTestClient(t, stub, nil)
	store := testStore(t)
	p, _ := store.ByID(1)

	assert.Equal(t, "A luminous marvel.", c.EnhanceDescription(t.Context(), p))
}

func TestIdentifyProduct(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		wantID int
		wantOK bool
	}{
		{"plain id", "6", 6, true},
		{"id with punctuation", "Product: 6.", 6, true},
		{"no match", "none", 0, false},
		{"unknown id", "999", 0, false},
		{"garbage", "I cannot tell", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
				return textResponse(tt.answer), nil
			}}
			c := newTestClient(t, stub, nil)

			p, ok, err := c.IdentifyProduct(t.Context(), testStore(t), []byte{0xFF, 0xD8}, "image/jpeg")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, p.ID)
			}
		})
	}
}

func TestTranscribeRejectsNonWAV(t *testing.T) {
	c := newTestClient(t, &stubModels{}, nil)
	_, err := c.Transcribe(t.Context(), []byte("not audio"))
	assert.ErrorIs(t, err, media.ErrNotWAV)
}

func TestTranscribe(t *testing.T) {
	stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
		return textResponse("show me desk lamps"), nil
	}}
	c := newTestClient(t, stub, nil)

	wav := media.WrapPCMInWAV(make([]byte, 64), 16000, 1)
	text, err := c.Transcribe(t.Context(), wav)
	require.NoError(t, err)
	assert.Equal(t, "show me desk lamps", text)
}

func TestSpeakWrapsPCM(t *testing.T) {
	pcm := make([]byte, 480)
	stub := &stubModels{reply: func(int) (*genai.GenerateContentResponse, error) {
		return audioResponse(pcm), nil
	}}
	c := newTestClient(t, stub, nil)

	wav, err := c.Speak(t.Context(), "Welcome to Lumina")
	require.NoError(t, err)
	assert.NoError(t, media.ValidateWAV(wav))
	assert.Len(t, wav, 44+len(pcm))

	require.NotNil(t, stub.requests[0].cfg)
	assert.Equal(t, []string{"AUDIO"}, stub.requests[0].cfg.ResponseModalities)
	assert.Equal(t, "Kore", stub.requests[0].cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(errors.New("Requested entity was not found.")), ErrEntityNotFound)
	assert.ErrorIs(t, classify(errors.New("status 404: NOT_FOUND")), ErrEntityNotFound)

	plain := errors.New("deadline exceeded")
	assert.False(t, errors.Is(classify(plain), ErrEntityNotFound))
	assert.NoError(t, classify(nil))
}

// stubVideo scripts the long-running render operation.
type stubVideo struct {
	doneAfter int
	polls     int
	result    *genai.GenerateVideosOperation
	submitErr error
	image     *genai.Image
}

func (s *stubVideo) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, cfg *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	s.image = image
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	if s.doneAfter == 0 {
		return s.result, nil
	}
	return &genai.GenerateVideosOperation{}, nil
}

func (s *stubVideo) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation, cfg *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	s.polls++
	if s.polls >= s.doneAfter {
		return s.result, nil
	}
	return &genai.GenerateVideosOperation{}, nil
}

func finishedOperation(bytes []byte, uri string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{
				Video: &genai.Video{VideoBytes: bytes, URI: uri},
			}},
		},
	}
}

func TestGenerateShowcaseVideoPollsUntilDone(t *testing.T) {
	video := &stubVideo{doneAfter: 2, result: finishedOperation([]byte("mp4"), "")}
	c := newTestClient(t, nil, video)
	store := testStore(t)
	p, _ := store.ByID(1)

	res, err := c.GenerateShowcaseVideo(t.Context(), p, nil, "")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4"), res.Bytes)
	assert.Equal(t, 2, video.polls)
}

func TestGenerateShowcaseVideoSendsReferenceImage(t *testing.T) {
	video := &stubVideo{result: finishedOperation([]byte("mp4"), "")}
	c := newTestClient(t, nil, video)
	store := testStore(t)
	p, _ := store.ByID(1)

	_, err := c.GenerateShowcaseVideo(t.Context(), p, []byte{0xFF, 0xD8, 0x01}, "image/jpeg")
	require.NoError(t, err)
	require.NotNil(t, video.image)
	assert.Equal(t, []byte{0xFF, 0xD8, 0x01}, video.image.ImageBytes)
	assert.Equal(t, "image/jpeg", video.image.MIMEType)

	// Without a photo the render is submitted text-only.
	_, err = c.GenerateShowcaseVideo(t.Context(), p, nil, "")
	require.NoError(t, err)
	assert.Nil(t, video.image)
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()
	defer http.DefaultClient.CloseIdleConnections()

	data, mimeType, err := FetchImage(t.Context(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", mimeType)
}

func TestFetchImageRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()
	defer http.DefaultClient.CloseIdleConnections()

	_, _, err := FetchImage(t.Context(), srv.URL)
	assert.Error(t, err)
}

func TestGenerateShowcaseVideoTimesOut(t *testing.T) {
	// Never finishes; client gives up after cfg.MaxPolls.
	video := &stubVideo{doneAfter: 100}
	c := newTestClient(t, nil, video)
	store := testStore(t)
	p, _ := store.ByID(1)

	_, err := c.GenerateShowcaseVideo(t.Context(), p, nil, "")
	assert.ErrorIs(t, err, ErrVideoTimeout)
	assert.Equal(t, 3, video.polls)
}

func TestGenerateShowcaseVideoEntityNotFound(t *testing.T) {
	video := &stubVideo{submitErr: errors.New("Requested entity was not found.")}
	c := newTestClient(t, nil, video)
	store := testStore(t)
	p, _ := store.ByID(1)

	_, err := c.GenerateShowcaseVideo(t.Context(), p, nil, "")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestGenerateShowcaseVideoCancelled(t *testing.T) {
	video := &stubVideo{doneAfter: 100}
	c := newTestClient(t, nil, video)
	c.pollInterval = time.Hour
	store := testStore(t)
	p, _ := store.ByID(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GenerateShowcaseVideo(ctx, p, nil, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChatSystemInstructionListsEveryProduct(t *testing.T) {
	store := testStore(t)
	sys := chatSystemInstruction(store)
	for _, p := range store.All() {
		assert.True(t, strings.Contains(sys, p.Name), "missing %s", p.Name)
	}
}
