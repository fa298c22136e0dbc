package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/logging"
)

const fallbackDescription = "Experience the pinnacle of design and engineering. " +
	"This product combines premium materials with cutting-edge technology to elevate your everyday."

// EnhanceDescription asks the model for a richer marketing blurb for the
// product detail view. Failures degrade to a stock line so the view always
// has something to show.
func (c *Client) EnhanceDescription(ctx context.Context, p catalog.Product) string {
	prompt := fmt.Sprintf(
		"Write a vivid two-sentence marketing description for this product. "+
			"No headings, no markdown, plain prose only.\n\nName: %s\nCategory: %s\nCurrent description: %s",
		p.Name, p.Category, p.Description)

	resp, err := c.models.GenerateContent(ctx, c.cfg.ChatModelName(),
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, nil)
	if err != nil {
		c.log.Warn("enhance description failed, using stock copy",
			zap.String("category", logging.CategoryGateway),
			zap.Int("product_id", p.ID), zap.Error(err))
		return fallbackDescription
	}
	if text := responseText(resp); text != "" {
		return text
	}
	return fallbackDescription
}
