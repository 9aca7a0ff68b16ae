package domain

// City is immutable reference data, created by the seeder and never mutated.
type City struct {
	ID   string `json:"city_id"`
	Name string `json:"city_name"`
}
