// Package server implements the MCP gateway for image generation.
//
// The gateway registers four capability groups on a stdio MCP server:
//
//   - tools: generate-image (remote text-to-image inference),
//     save-image (download a generated image to disk), and
//     list-saved-images (report every known image and whether its file
//     still exists)
//   - resources: saved images addressed as image://internal/<id>,
//     readable as raw PNG bytes
//   - prompts: a static generate-image template with a style argument
//
// # Error Handling
//
// Two tiers. Validation problems (missing required argument, foreign
// URI scheme, unknown style) are returned as Go errors and surface as
// protocol-level errors for the single request. Operational problems
// (remote API failure, non-200 download, filesystem trouble) are caught
// where they occur and converted into well-formed tool results whose
// text begins with a stable category token (generation_failed,
// download_failed, save_failed); the server keeps running and stays
// available for the next call.
//
// # State
//
// All state lives on the Gateway instance: the record store, the saver,
// and the generator client are injected at construction, so tests can
// substitute any of them.
package server
