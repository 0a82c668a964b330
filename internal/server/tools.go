package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names form a closed set; anything else is rejected by the MCP
// server's registration table before reaching a handler.
const (
	toolGenerateImage   = "generate-image"
	toolSaveImage       = "save-image"
	toolListSavedImages = "list-saved-images"
)

// Default sampling parameters for generate-image.
const (
	defaultWidth    = 768
	defaultHeight   = 768
	defaultSteps    = 50
	defaultGuidance = 7.5
)

// toolDefinitions returns the tool table exposed by the gateway.
func toolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(toolGenerateImage,
			mcp.WithDescription("Generate an image using Replicate's Stable Diffusion model"),
			mcp.WithString("prompt",
				mcp.Required(),
				mcp.Description("Text description of the image to generate"),
			),
			mcp.WithString("negative_prompt",
				mcp.Description("Things to avoid in the generated image"),
			),
			mcp.WithNumber("width",
				mcp.DefaultNumber(defaultWidth),
				mcp.Description("Image width in pixels"),
			),
			mcp.WithNumber("height",
				mcp.DefaultNumber(defaultHeight),
				mcp.Description("Image height in pixels"),
			),
			mcp.WithNumber("num_inference_steps",
				mcp.DefaultNumber(defaultSteps),
				mcp.Description("Number of denoising steps"),
			),
			mcp.WithNumber("guidance_scale",
				mcp.DefaultNumber(defaultGuidance),
				mcp.Description("How closely the output follows the prompt"),
			),
		),
		mcp.NewTool(toolSaveImage,
			mcp.WithDescription("Save a generated image"),
			mcp.WithString("image_url",
				mcp.Required(),
				mcp.Description("URL of the generated image to download"),
			),
			mcp.WithString("prompt",
				mcp.Required(),
				mcp.Description("The prompt the image was generated from"),
			),
			mcp.WithString("target_directory",
				mcp.Description("Directory path where the image should be saved. If not provided, defaults to the server's images directory."),
			),
			mcp.WithString("custom_filename",
				mcp.Description("Custom filename for the saved image (without extension). If not provided, a generated id is used."),
			),
		),
		mcp.NewTool(toolListSavedImages,
			mcp.WithDescription("List all saved images"),
		),
	}
}

// registerTools wires each tool definition to its handler.
func (g *Gateway) registerTools() {
	for _, tool := range toolDefinitions() {
		switch tool.Name {
		case toolGenerateImage:
			g.mcp.AddTool(tool, g.handleGenerateImage)
		case toolSaveImage:
			g.mcp.AddTool(tool, g.handleSaveImage)
		case toolListSavedImages:
			g.mcp.AddTool(tool, g.handleListSavedImages)
		}
	}
}
