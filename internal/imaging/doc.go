// Package imaging provides image helpers for the generation server:
// downscaled base64 PNG previews for tool responses and simple color
// analysis for saved-image metadata.
//
// All operations work with standard Go image.Image values. Previews
// preserve aspect ratio and are always encoded as PNG regardless of the
// source format.
package imaging
