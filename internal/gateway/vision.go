package gateway

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/logging"
)

// IdentifyProduct matches a photo against the catalog. The second return is
// false when the model sees no catalog product in the image; that is not an
// error.
func (c *Client) IdentifyProduct(ctx context.Context, store *catalog.Store, image []byte, mimeType string) (catalog.Product, bool, error) {
	var b strings.Builder
	b.WriteString("Identify which of these products appears in the photo. " +
		"Reply with the product id number only, or the word none.\n\n")
	for _, p := range store.All() {
		fmt.Fprintf(&b, "%d: %s (%s)\n", p.ID, p.Name, p.Category)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(b.String()),
		}, genai.RoleUser),
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.VisionModelName(), contents, nil)
	if err != nil {
		return catalog.Product{}, false, classify(err)
	}

	answer := strings.ToLower(strings.TrimSpace(responseText(resp)))
	id, ok := parseProductAnswer(answer)
	if !ok {
		c.log.Debug("vision found no catalog match",
			zap.String("category", logging.CategoryGateway), zap.String("answer", answer))
		return catalog.Product{}, false, nil
	}
	p, ok := store.ByID(id)
	if !ok {
		return catalog.Product{}, false, nil
	}
	return p, true, nil
}

// parseProductAnswer extracts a product id from a model reply, tolerating
// stray punctuation around the number.
func parseProductAnswer(answer string) (int, bool) {
	if answer == "" || strings.Contains(answer, "none") {
		return 0, false
	}
	digits := strings.TrimFunc(answer, func(r rune) bool {
		return r < '0' || r > '9'
	})
	id, err := strconv.Atoi(digits)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
