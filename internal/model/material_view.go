package model

import "time"

// MaterialView is the flattened response shape of a Material.
// FilePath carries an absolute URL, not the stored name.
type MaterialView struct {
	MaterialID   string     `json:"material_id"`
	TopicName    string     `json:"topic_name"`
	MaterialType string     `json:"material_type"`
	Name         string     `json:"name"`
	FilePath     string     `json:"file_path"`
	Duration     int        `json:"duration"`
	IsActive     bool       `json:"is_active"`
	IsAvailable  bool       `json:"is_available"`
	CreatedAt    time.Time  `json:"created_at"`
	CreatedBy    string     `json:"created_by"`
	ModifiedAt   *time.Time `json:"modified_at"`
	ModifiedBy   *string    `json:"modified_by"`
}
