package models

// Toilet is a physical facility unit being tracked. Toilets are provisioned by
// seeding or admin tooling and are soft-deactivated, never deleted.
type Toilet struct {
	BaseModel
	Name     string `gorm:"type:text;not null"     json:"name"`
	Location string `gorm:"type:text"              json:"location"`
	IsActive bool   `gorm:"type:bool;default:true" json:"is_active"`
}
