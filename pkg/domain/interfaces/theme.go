package interfaces

// ThemeProvider resolves the background color table the pipeline uses to
// keep icon colors legible. Rendering itself stays outside the core; only
// the key and the resolved color value cross this boundary.
type ThemeProvider interface {
	// BackgroundKey returns the background color key for the read state
	// of a card ("read" or "unread")
	BackgroundKey(isRead bool) string

	// BackgroundColor resolves a background color key to its hex value
	BackgroundColor(key string) string
}
