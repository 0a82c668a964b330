package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/imagegen/image-gen-mcp/internal/gallery"
	"github.com/imagegen/image-gen-mcp/internal/imaging"
	"github.com/imagegen/image-gen-mcp/internal/replicate"
)

// saveLocationSentinel tells the caller to ask the user where the
// generated image should be stored before invoking save-image.
const saveLocationSentinel = "ASK_FOR_SAVE_LOCATION"

// Machine-checkable failure categories. Operational failures come back
// as well-formed tool results prefixed with one of these tokens; the
// process never crashes for a bad request.
const (
	categoryGenerationFailed = "generation_failed"
	categoryDownloadFailed   = "download_failed"
	categorySaveFailed       = "save_failed"
)

// errorResult converts an operational failure into a tool result the
// caller can inspect, keeping the server available for the next call.
func errorResult(category string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: fmt.Sprintf("%s: %v", category, err)},
		},
	}
}

func textContent(text string) mcp.Content {
	return mcp.TextContent{Type: "text", Text: text}
}

// handleGenerateImage invokes the remote inference API. Missing prompt
// is a validation error and never reaches the network; remote failures
// are converted into error-text results.
func (g *Gateway) handleGenerateImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	prompt := stringArg(args, "prompt", "")
	if prompt == "" {
		return nil, fmt.Errorf("missing required argument: prompt")
	}

	input := replicate.GenerationInput{
		Prompt:            prompt,
		NegativePrompt:    stringArg(args, "negative_prompt", ""),
		Width:             intArg(args, "width", defaultWidth),
		Height:            intArg(args, "height", defaultHeight),
		NumInferenceSteps: intArg(args, "num_inference_steps", defaultSteps),
		GuidanceScale:     floatArg(args, "guidance_scale", defaultGuidance),
	}

	g.logger.Info().Str("prompt", prompt).Int("width", input.Width).Int("height", input.Height).
		Msg("generating image")

	urls, err := g.generator.Generate(ctx, input)
	if err != nil {
		g.logger.Error().Err(err).Msg("generation failed")
		return errorResult(categoryGenerationFailed, err), nil
	}

	imageURL := urls[0]
	g.logger.Info().Str("url", imageURL).Msg("image generated")

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			textContent("Image generated successfully! Use the save-image tool to save it permanently."),
			mcp.ImageContent{Type: "image", Data: imageURL, MIMEType: "image/png"},
			textContent("Image URL: " + imageURL),
			textContent(saveLocationSentinel),
		},
	}, nil
}

// handleSaveImage creates the ImageRecord first, then downloads, so the
// record exists even when the download fails. A bad target directory
// falls back to the default directory instead of losing the image.
func (g *Gateway) handleSaveImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	imageURL := stringArg(args, "image_url", "")
	prompt := stringArg(args, "prompt", "")
	if imageURL == "" || prompt == "" {
		return nil, fmt.Errorf("missing required argument: image_url and prompt are both required")
	}

	dir, custom := g.saver.ResolveTargetDir(stringArg(args, "target_directory", ""))
	customDir := ""
	if custom {
		customDir = dir
	}

	rec := g.store.Add(prompt, imageURL, customDir, stringArg(args, "custom_filename", ""))
	g.publishRecord(rec)
	path := g.store.Path(rec)

	g.logger.Info().Str("id", rec.ID).Str("url", imageURL).Str("path", path).
		Msg("saving image")

	img, err := g.saver.Download(ctx, imageURL, path)
	if err != nil {
		g.logger.Error().Err(err).Str("id", rec.ID).Msg("save failed")
		if _, ok := err.(*gallery.DownloadError); ok {
			return errorResult(categoryDownloadFailed, err), nil
		}
		return errorResult(categorySaveFailed, err), nil
	}

	g.store.SetAverageColor(rec.ID, imaging.AverageColorHex(img))
	g.notifyResourcesChanged()

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			textContent("Image saved successfully to " + path),
			mcp.ImageContent{Type: "image", Data: "file://" + path, MIMEType: "image/png"},
		},
	}, nil
}

// handleListSavedImages walks every record, recomputing the expected
// path each time. Present files get a detail entry with an embedded
// preview; missing files get a warning entry. The record count is never
// affected by listing.
func (g *Gateway) handleListSavedImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := g.store.List()
	g.logger.Info().Int("count", len(records)).Msg("listing saved images")

	if len(records) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{textContent("No images have been saved yet.")},
		}, nil
	}

	content := []mcp.Content{
		textContent(fmt.Sprintf("Found %d saved images:", len(records))),
	}

	for _, rec := range records {
		path := g.store.Path(rec)

		if _, err := os.Stat(path); err != nil {
			content = append(content, textContent(fmt.Sprintf(
				"ID: %s\nPrompt: %s\nCreated: %s\nWARNING: Image file not found at %s",
				rec.ID, rec.Prompt, rec.CreatedAt.Format(time.RFC3339), path)))
			continue
		}

		detail := fmt.Sprintf("ID: %s\nPrompt: %s\nCreated: %s\nLocation: %s",
			rec.ID, rec.Prompt, rec.CreatedAt.Format(time.RFC3339), path)
		if rec.AverageColor != "" {
			detail += "\nAverage color: " + rec.AverageColor
		}
		content = append(content, textContent(detail))

		preview, err := imaging.PreviewFile(path, imaging.DefaultPreviewSize)
		if err != nil {
			g.logger.Warn().Err(err).Str("path", path).Msg("cannot build preview")
			content = append(content, textContent("Preview unavailable; image file at "+path))
			continue
		}
		content = append(content, mcp.ImageContent{Type: "image", Data: preview.ImageBase64, MIMEType: preview.MimeType})
	}

	return &mcp.CallToolResult{Content: content}, nil
}

// === argument helpers ===

func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func floatArg(args map[string]any, key string, def float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}
