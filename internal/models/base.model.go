package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseUUIDModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuidv7()" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                        json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"                        json:"updated_at"`
	DeletedAt gorm.DeletedAt `                                             json:"-"`
}

type BaseModel struct {
	ID        int            `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                    json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"                    json:"updated_at"`
	DeletedAt gorm.DeletedAt `                                         json:"-"`
}
