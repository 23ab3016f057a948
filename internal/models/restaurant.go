package models

// Restaurant is a catalog entry that members like or skip.
type Restaurant struct {
	ID         string  `mapstructure:"id"`
	Name       string  `mapstructure:"name"`
	ImageURL   string  `mapstructure:"image_url"`
	Cuisine    string  `mapstructure:"cuisine"`
	PriceRange string  `mapstructure:"price_range"` // "$" through "$$$$"
	Rating     float64 `mapstructure:"rating"`
	Address    string  `mapstructure:"address"`
	Latitude   float64 `mapstructure:"latitude"`
	Longitude  float64 `mapstructure:"longitude"`
	Phone      string  `mapstructure:"phone"`
	Website    string  `mapstructure:"website"`
}
