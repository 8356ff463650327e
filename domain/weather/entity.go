package weather

import (
	"time"
)

// Log is one recorded upstream weather lookup. Rows are append-only: they are
// written on successful lookups and never updated or deleted.
type Log struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	City        string    `gorm:"size:100;not null" json:"city"`
	Temperature float64   `gorm:"not null" json:"temperature"`
	Description string    `gorm:"size:200" json:"description"`
	Humidity    int       `gorm:"not null" json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
}

// TableName returns the table name for the Log entity.
func (Log) TableName() string {
	return "weather_logs"
}

// Report is the normalized payload returned to callers after a successful
// lookup. It carries more provider fields than the persisted log row.
type Report struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"`
	FeelsLike   float64   `json:"feels_like"`
	Pressure    int       `json:"pressure"`
	WindSpeed   float64   `json:"wind_speed"`
	Country     string    `json:"country"`
	LoggedAt    time.Time `json:"logged_at"`
}
