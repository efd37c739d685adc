// Package youtube implements source.Provider on the YouTube Data API v3 with
// API key authentication. It reads the video snippet and content details and
// pages through top-level comment threads in relevance order.
package youtube
