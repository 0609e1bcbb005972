package domain

import "time"

type Profile struct {
	ID                string     `json:"id" db:"id"`
	FirstName         string     `json:"first_name" db:"first_name"`
	LastName          string     `json:"last_name" db:"last_name"`
	BirthDate         time.Time  `json:"birth_date" db:"birth_date"`
	Bio               *string    `json:"bio" db:"bio"`
	Church            *string    `json:"church" db:"church"`
	Denomination      *string    `json:"denomination" db:"denomination"`
	Interests         []string   `json:"interests" db:"interests"`
	MinistryInterests []string   `json:"ministry_interests" db:"ministry_interests"`
	LocationLat       *float64   `json:"location_lat" db:"location_lat"`
	LocationLon       *float64   `json:"location_lon" db:"location_lon"`
	ProfileCompleted  bool       `json:"profile_completed" db:"profile_completed"`
	IsOnline          bool       `json:"is_online" db:"is_online"`
	LastActive        *time.Time `json:"last_active" db:"last_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// Age returns full years since birth date.
func (p *Profile) Age() int {
	now := time.Now()
	age := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

// Location returns the profile's coordinate, or nil if it was never set.
func (p *Profile) Location() *GeoPoint {
	if p.LocationLat == nil || p.LocationLon == nil {
		return nil
	}
	return &GeoPoint{Lat: *p.LocationLat, Lon: *p.LocationLon}
}
