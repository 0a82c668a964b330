package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/imagegen/image-gen-mcp/internal/gallery"
)

// resourceScheme is the only URI scheme the gateway accepts for image
// resources; saved images live at image://internal/<id>.
const resourceScheme = "image"

const resourceListChangedMethod = "notifications/resources/list_changed"

func recordURI(id string) string {
	return resourceScheme + "://internal/" + id
}

// registerResources installs the resource template so any
// image://internal/<id> URI can be read, saved or not. Concrete
// resources are added per record as saves happen.
func (g *Gateway) registerResources() {
	template := mcp.NewResourceTemplate(
		recordURI("{id}"),
		"Generated images",
		mcp.WithTemplateDescription("Images generated and saved by this server"),
		mcp.WithTemplateMIMEType("image/png"),
	)
	g.mcp.AddResourceTemplate(template, g.readResource)
}

// publishRecord adds an ImageRecord to the resource list. Called as soon
// as the record exists, so even a record whose download later fails is
// listed (reading it reports not-found until a file appears).
func (g *Gateway) publishRecord(rec *gallery.ImageRecord) {
	resource := mcp.NewResource(
		recordURI(rec.ID),
		"Image: "+rec.Prompt,
		mcp.WithResourceDescription("Generated on "+rec.CreatedAt.Format(time.RFC3339)),
		mcp.WithMIMEType("image/png"),
	)
	g.mcp.AddResource(resource, g.readResource)
}

// notifyResourcesChanged tells every session the resource list changed.
func (g *Gateway) notifyResourcesChanged() {
	g.mcp.SendNotificationToAllClients(resourceListChangedMethod, nil)
}

// readResource returns the raw file bytes for a saved image. Foreign
// schemes are invalid arguments; unknown ids and absent files are
// not-found conditions.
func (g *Gateway) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid resource URI %q: %w", uri, err)
	}
	if parsed.Scheme != resourceScheme {
		return nil, fmt.Errorf("unsupported URI scheme: %q", parsed.Scheme)
	}

	id := strings.TrimPrefix(parsed.Path, "/")
	rec, ok := g.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("image not found: %s", id)
	}

	data, err := os.ReadFile(g.store.Path(rec))
	if err != nil {
		return nil, fmt.Errorf("image not found: %s", id)
	}

	return []mcp.ResourceContents{
		mcp.BlobResourceContents{
			URI:      uri,
			MIMEType: "image/png",
			Blob:     base64.StdEncoding.EncodeToString(data),
		},
	}, nil
}
