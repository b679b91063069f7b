// Package fixture holds the demo dataset the journal ships with and loads it
// into a store at startup. The records stand in for a remote backend: two
// accounts, five categories and six memories.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
)

func Users() []model.User {
	return []model.User{
		{ID: "user_1", Name: "John Doe", Email: "john@example.com", Password: "password123"},
		{ID: "user_2", Name: "Jane Smith", Email: "jane@example.com", Password: "password123"},
	}
}

func Categories() []model.Category {
	return []model.Category{
		{ID: "category_1", UserID: "user_1", Name: "Family", Color: "#a86032"},
		{ID: "category_2", UserID: "user_1", Name: "Travel", Color: "#5b7b7a"},
		{ID: "category_3", UserID: "user_1", Name: "Friends", Color: "#8f784b"},
		{ID: "category_4", UserID: "user_2", Name: "Work", Color: "#76624c"},
		{ID: "category_5", UserID: "user_2", Name: "Vacation", Color: "#b0a171"},
	}
}

func Memories() []model.Memory {
	return []model.Memory{
		{
			ID: "memory_1", UserID: "user_1",
			Title:       "Family Reunion",
			Description: "Annual family reunion at Grandma's house. Everyone was there!",
			ImageURI:    "https://images.unsplash.com/photo-1609220136736-443140cffec6?q=80&w=1470&auto=format&fit=crop",
			Date:        "2023-07-15",
			CategoryID:  "category_1",
			Location:    &model.Location{Latitude: 40.7128, Longitude: -74.006, Name: "New York, NY"},
			CreatedAt:   ts("2023-07-16T14:30:00Z"),
		},
		{
			ID: "memory_2", UserID: "user_1",
			Title:       "Trip to Paris",
			Description: "Visited the Eiffel Tower and had amazing croissants!",
			ImageURI:    "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?q=80&w=1473&auto=format&fit=crop",
			Date:        "2023-05-10",
			CategoryID:  "category_2",
			Location:    &model.Location{Latitude: 48.8566, Longitude: 2.3522, Name: "Paris, France"},
			CreatedAt:   ts("2023-05-15T10:20:00Z"),
		},
		{
			ID: "memory_3", UserID: "user_1",
			Title:       "Birthday Party",
			Description: "My 30th birthday celebration with friends",
			ImageURI:    "https://images.unsplash.com/photo-1530103862676-de8c9debad1d?q=80&w=1470&auto=format&fit=crop",
			Date:        "2023-03-22",
			CategoryID:  "category_3",
			CreatedAt:   ts("2023-03-23T18:45:00Z"),
		},
		{
			ID: "memory_4", UserID: "user_1",
			Title:       "Hiking Trip",
			Description: "Amazing views from the mountain top!",
			ImageURI:    "https://images.unsplash.com/photo-1551632811-561732d1e306?q=80&w=1470&auto=format&fit=crop",
			Date:        "2023-08-05",
			CategoryID:  "category_2",
			Location:    &model.Location{Latitude: 36.5785, Longitude: -118.2923, Name: "Sequoia National Park"},
			CreatedAt:   ts("2023-08-07T09:15:00Z"),
		},
		{
			ID: "memory_5", UserID: "user_2",
			Title:       "Company Retreat",
			Description: "Team building activities and planning sessions",
			ImageURI:    "https://images.unsplash.com/photo-1515187029135-18ee286d815b?q=80&w=1470&auto=format&fit=crop",
			Date:        "2023-06-20",
			CategoryID:  "category_4",
			Location:    &model.Location{Latitude: 34.0522, Longitude: -118.2437, Name: "Los Angeles, CA"},
			CreatedAt:   ts("2023-06-22T16:30:00Z"),
		},
		{
			ID: "memory_6", UserID: "user_2",
			Title:       "Beach Vacation",
			Description: "Relaxing week at the beach with perfect weather",
			ImageURI:    "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?q=80&w=1473&auto=format&fit=crop",
			Date:        "2023-04-10",
			CategoryID:  "category_5",
			Location:    &model.Location{Latitude: 25.7617, Longitude: -80.1918, Name: "Miami Beach, FL"},
			CreatedAt:   ts("2023-04-18T12:10:00Z"),
		},
	}
}

// Seed loads the demo dataset. Records already present (matched by the unique
// email for users, by id-scoped lookups otherwise) are left alone, so seeding
// a durable store twice is safe.
func Seed(ctx context.Context, s store.Store) error {
	for _, u := range Users() {
		if _, err := s.Users().GetByEmail(ctx, u.Email); err == nil {
			continue
		}
		rec := u
		if _, err := s.Users().Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}
	for _, c := range Categories() {
		if _, err := s.Categories().GetByID(ctx, c.UserID, c.ID); err == nil {
			continue
		}
		rec := c
		if _, err := s.Categories().Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}
	for _, m := range Memories() {
		if _, err := s.Memories().GetByID(ctx, m.UserID, m.ID); err == nil {
			continue
		}
		rec := m
		if _, err := s.Memories().Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed memory %s: %w", m.ID, err)
		}
	}
	return nil
}

func ts(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
