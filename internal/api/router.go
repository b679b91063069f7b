package api

import (
	"github.com/gorilla/mux"

	"github.com/reminisce-app/journal-server/internal/api/recovery"
	"github.com/reminisce-app/journal-server/internal/services"
	"github.com/reminisce-app/journal-server/internal/session"
)

// NewRouter wires all HTTP routes to handlers. Every route goes through the
// repositories and the session manager; nothing reaches the backing store
// directly, so owner scoping cannot be bypassed.
func NewRouter(sess *session.Manager, cats *services.CategoryService, mems *services.MemoryService) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Auth / session
	auth := NewAuthHandler(sess)
	root.HandleFunc("/api/auth/signup", auth.Signup).Methods("POST")
	root.HandleFunc("/api/auth/login", auth.Login).Methods("POST")
	root.HandleFunc("/api/auth/logout", auth.Logout).Methods("POST")
	root.HandleFunc("/api/auth/session", auth.GetSession).Methods("GET")
	root.HandleFunc("/api/profile", auth.UpdateProfile).Methods("PATCH")

	// Categories
	category := NewCategoryHandler(cats, mems)
	root.HandleFunc("/api/categories", category.ListCategories).Methods("GET")
	root.HandleFunc("/api/categories", category.CreateCategory).Methods("POST")
	root.HandleFunc("/api/categories/{categoryId}", category.GetCategory).Methods("GET")
	root.HandleFunc("/api/categories/{categoryId}", category.UpdateCategory).Methods("PUT")
	root.HandleFunc("/api/categories/{categoryId}", category.DeleteCategory).Methods("DELETE")
	root.HandleFunc("/api/categories/{categoryId}/memories", category.ListCategoryMemories).Methods("GET")

	// Memories
	memory := NewMemoryHandler(mems)
	root.HandleFunc("/api/memories", memory.ListMemories).Methods("GET")
	root.HandleFunc("/api/memories", memory.CreateMemory).Methods("POST")
	root.HandleFunc("/api/memories/{memoryId}", memory.GetMemory).Methods("GET")
	root.HandleFunc("/api/memories/{memoryId}", memory.UpdateMemory).Methods("PATCH")
	root.HandleFunc("/api/memories/{memoryId}", memory.DeleteMemory).Methods("DELETE")

	// Search
	root.HandleFunc("/api/search", memory.SearchMemories).Methods("GET")

	// Health
	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}
