package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Compact drops blank entries and trims the remaining ones, keeping order
func (a JSONBStringArray) Compact() JSONBStringArray {
	out := make(JSONBStringArray, 0, len(a))
	for _, s := range a {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	Ingredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	PrepTime      int              `gorm:"not null;default:0" json:"prep_time"`
	CookTime      int              `gorm:"not null;default:0" json:"cook_time"`
	Servings      int              `gorm:"not null;default:1" json:"servings"`
	Difficulty    string           `gorm:"size:10;not null;default:'easy'" json:"difficulty"`
	Cuisine       string           `gorm:"size:100" json:"cuisine"`
	ImageURL      *string          `gorm:"size:512" json:"image_url"`
	IsAIGenerated bool             `gorm:"not null;default:false" json:"is_ai_generated"`
	Embedding     pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	Author        *Profile         `gorm:"foreignKey:UserID;references:UserID" json:"author,omitempty"`
}

// BeforeCreate assigns an ID when the caller did not supply one
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime returns prep plus cook time in minutes
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}
