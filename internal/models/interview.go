package models

import "time"

// Interview is a persisted interview definition. It is created eagerly as a draft for catalog
// sessions (Finalized=false) or lazily after a free-form session (Finalized=true).
// Finalization is monotonic.
type Interview struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id" bson:"_id"`
	UserID     string    `gorm:"index;not null" json:"userId" bson:"userId"`
	Role       string    `gorm:"not null" json:"role" bson:"role"`
	Type       string    `gorm:"not null" json:"type" bson:"type"`
	Level      string    `json:"level" bson:"level"`
	Techstack  []string  `gorm:"type:text;serializer:json" json:"techstack" bson:"techstack"`
	Questions  []string  `gorm:"type:text;serializer:json" json:"questions" bson:"questions"`
	CoverImage string    `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Finalized  bool      `gorm:"index;not null;default:false" json:"finalized" bson:"finalized"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
}

// InterviewDetails are the attributes recovered from a transcript for free-form sessions.
type InterviewDetails struct {
	Role      string   `json:"role"`
	Techstack []string `json:"techstack"`
	Type      string   `json:"type"`
}

// InterviewProfile describes the interview a live session is conducting.
type InterviewProfile struct {
	Role      string   `json:"role"`
	Type      string   `json:"type"`
	Techstack []string `json:"techstack"`
	Questions []string `json:"questions"`
}
