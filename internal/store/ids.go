package store

import "github.com/google/uuid"

// ID prefixes follow the original dataset's naming (user_1, category_2, …)
// so fixture records and generated records sort into the same namespace.
const (
	UserIDPrefix     = "user_"
	CategoryIDPrefix = "category_"
	MemoryIDPrefix   = "memory_"
)

// NewID returns a fresh unique identifier with the given table prefix.
func NewID(prefix string) string { return prefix + uuid.New().String() }
