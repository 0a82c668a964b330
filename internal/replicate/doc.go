// Package replicate implements a minimal client for the Replicate
// predictions API, sufficient to run a text-to-image model and collect
// the resulting image URLs.
package replicate
