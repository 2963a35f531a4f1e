package page

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/media"
)

// ImageResult is a generated picture.
type ImageResult struct {
	Prompt  string           `json:"prompt"`
	Style   string           `json:"style"`
	Image   datasource.Image `json:"image"`
	Notices []Notice         `json:"notices"`
}

// Imagine controls text-to-image generation on the upload page.
type Imagine struct {
	src datasource.Source
	log *slog.Logger
}

// NewImagine constructs the text-to-image controller.
func NewImagine(src datasource.Source, log *slog.Logger) *Imagine {
	return &Imagine{src: src, log: log}
}

// Generate validates the prompt and style before asking for an image.
func (i *Imagine) Generate(ctx context.Context, prompt, style string) (*ImageResult, error) {
	prompt, err := media.ValidatePrompt(prompt, style)
	if err != nil {
		return nil, err
	}

	img, err := i.src.TextToImage(ctx, prompt, style)
	if err != nil {
		i.log.Error("text to image failed", "style", style, "err", err)
		return nil, fail(fmt.Sprintf("Failed to generate image: %s", reason(err)), err)
	}

	return &ImageResult{
		Prompt:  prompt,
		Style:   style,
		Image:   img,
		Notices: []Notice{notice(Success, "Image generated successfully!")},
	}, nil
}
