package gateway

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/logging"
)

// Chat is a multi-turn shopping assistant conversation. Requests are
// serialized: a Send while another is in flight fails fast with ErrBusy
// instead of queueing.
type Chat struct {
	client  *Client
	system  *genai.Content
	history []*genai.Content
	sem     *semaphore.Weighted
}

// NewChat starts a conversation grounded in the store's catalog.
func (c *Client) NewChat(store *catalog.Store) *Chat {
	return &Chat{
		client: c,
		system: genai.NewContentFromText(chatSystemInstruction(store), genai.RoleUser),
		sem:    semaphore.NewWeighted(1),
	}
}

// Send submits one user turn and returns the assistant's reply. The turn is
// only appended to the history when the API call succeeds, so a failed send
// can be retried verbatim.
func (ch *Chat) Send(ctx context.Context, text string) (string, error) {
	if !ch.sem.TryAcquire(1) {
		return "", ErrBusy
	}
	defer ch.sem.Release(1)

	c := ch.client
	contents := append(append([]*genai.Content{}, ch.history...),
		genai.NewContentFromText(text, genai.RoleUser))

	resp, err := c.models.GenerateContent(ctx, c.cfg.ChatModelName(), contents, &genai.GenerateContentConfig{
		SystemInstruction: ch.system,
	})
	if err != nil {
		c.log.Warn("chat send failed",
			zap.String("category", logging.CategoryGateway), zap.Error(err))
		return "", classify(err)
	}

	reply := responseText(resp)
	if reply == "" {
		return "", fmt.Errorf("empty reply from %s", c.cfg.ChatModelName())
	}

	ch.history = append(contents, genai.NewContentFromText(reply, genai.RoleModel))
	return reply, nil
}

// Len reports the number of turns recorded so far.
func (ch *Chat) Len() int { return len(ch.history) }

// chatSystemInstruction folds the live catalog into the assistant persona so
// answers reference real products and prices.
func chatSystemInstruction(store *catalog.Store) string {
	var b strings.Builder
	b.WriteString("You are Lumina, the shopping assistant for the Lumina storefront. ")
	b.WriteString("Be friendly and concise. Recommend only products from the catalog below, ")
	b.WriteString("quoting exact names and prices. If nothing fits, say so.\n\nCatalog:\n")
	for _, p := range store.All() {
		fmt.Fprintf(&b, "- %s ($%s, %s): %s\n", p.Name, p.Price.StringFixed(2), p.Category, p.Description)
	}
	return b.String()
}
