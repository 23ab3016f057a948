package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mmynk/biteswipe/internal/models"
)

// LoadRestaurants reads a seed catalog from a YAML or JSON file holding a
// top-level "restaurants" list.
func LoadRestaurants(path string) ([]*models.Restaurant, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read restaurants file %s: %w", path, err)
	}

	var restaurants []*models.Restaurant
	if err := v.UnmarshalKey("restaurants", &restaurants); err != nil {
		return nil, fmt.Errorf("failed to parse restaurants: %w", err)
	}

	seen := make(map[string]bool, len(restaurants))
	for i, r := range restaurants {
		if r.ID == "" {
			return nil, fmt.Errorf("restaurant %d: id is required", i)
		}
		if r.Name == "" {
			return nil, fmt.Errorf("restaurant %s: name is required", r.ID)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("restaurant %s: duplicate id", r.ID)
		}
		seen[r.ID] = true
	}
	return restaurants, nil
}
