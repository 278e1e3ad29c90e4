package interfaces

// ReadStateStore is the read/saved-state lookup the composition pipeline
// consults. It is an external collaborator: the pipeline only reads from
// it, the surrounding application writes to it.
type ReadStateStore interface {
	// IsRead reports whether the user already read the item
	IsRead(itemID string) bool

	// IsSaved reports whether the item is in the user's bookmark set
	IsSaved(itemID string) bool

	// MarkRead records the read state of a set of items
	MarkRead(itemIDs []string, read bool)

	// SetSaved records the bookmark state of a set of items
	SetSaved(itemIDs []string, saved bool)
}
