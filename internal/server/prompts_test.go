package server

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptReq(style string) mcp.GetPromptRequest {
	args := map[string]string{}
	if style != "" {
		args["style"] = style
	}
	return mcp.GetPromptRequest{
		Params: mcp.GetPromptParams{Name: promptGenerateImage, Arguments: args},
	}
}

func promptMessageText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestGetGeneratePrompt_Styles(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"realistic", "photorealistic"},
		{"artistic", "brushstrokes"},
		{"abstract", "geometric shapes"},
		{"", "photorealistic"}, // default
	}

	g, _ := newTestGateway(t, &stubGenerator{})
	for _, tt := range tests {
		name := tt.style
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			result, err := g.getGeneratePrompt(context.Background(), promptReq(tt.style))
			require.NoError(t, err)

			text := promptMessageText(t, result)
			assert.Contains(t, text, "Describe the image you want to generate.")
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestGetGeneratePrompt_UnknownStyleFails(t *testing.T) {
	g, _ := newTestGateway(t, &stubGenerator{})

	_, err := g.getGeneratePrompt(context.Background(), promptReq("cubist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown style")
}
