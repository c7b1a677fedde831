package model

import "time"

// Material is an uploaded learning resource attached to a course topic.
// FilePath holds the stored file name (e.g. "<uuid>_lecture.docx"), relative to
// the course material folder. Records are never physically removed; soft
// deletion clears IsActive.
type Material struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TopicID        string     `json:"topic_id"`
	MaterialTypeID string     `json:"material_type_id"`
	FilePath       string     `json:"file_path"`
	Duration       int        `json:"duration"`
	IsActive       bool       `json:"is_active"`
	IsAvailable    bool       `json:"is_available"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	ModifiedBy     *string    `json:"modified_by,omitempty"`
	ModifiedAt     *time.Time `json:"modified_at,omitempty"`

	// Populated by joined reads.
	Topic        *Topic        `json:"topic,omitempty"`
	MaterialType *MaterialType `json:"material_type,omitempty"`
}

// Topic is a course subdivision that owns materials. Read-only here.
type Topic struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// MaterialType classifies a material (video, document, ...). Read-only here.
type MaterialType struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}
