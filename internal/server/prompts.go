package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const promptGenerateImage = "generate-image"

const defaultStyle = "realistic"

// stylePrompts is the closed set of style hints. An unrecognized style
// is rejected, consistent with how unknown tools are rejected.
var stylePrompts = map[string]string{
	"realistic": "Create a photorealistic image with high detail and natural lighting.",
	"artistic":  "Create an artistic image in the style of a painting with vibrant colors and expressive brushstrokes.",
	"abstract":  "Create an abstract image with geometric shapes, bold colors, and non-representational forms.",
}

// registerPrompts installs the static prompt templates.
func (g *Gateway) registerPrompts() {
	prompt := mcp.NewPrompt(promptGenerateImage,
		mcp.WithPromptDescription("Generate an image using Replicate's Stable Diffusion model"),
		mcp.WithArgument("style",
			mcp.ArgumentDescription("Style of the image (realistic/artistic/abstract)"),
		),
	)
	g.mcp.AddPrompt(prompt, g.getGeneratePrompt)
}

// getGeneratePrompt builds the user-facing prompt message for the
// requested style.
func (g *Gateway) getGeneratePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	style := req.Params.Arguments["style"]
	if style == "" {
		style = defaultStyle
	}

	hint, ok := stylePrompts[style]
	if !ok {
		return nil, fmt.Errorf("unknown style: %q (expected realistic, artistic, or abstract)", style)
	}

	return mcp.NewGetPromptResult(
		"Generate an image using Stable Diffusion",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleUser,
				mcp.NewTextContent("Describe the image you want to generate. "+hint),
			),
		},
	), nil
}
