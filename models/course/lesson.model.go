package course

import "gorm.io/gorm"

const (
	LessonKindVideo = "VIDEO"
	LessonKindText  = "TEXT"
)

// Lesson represents a lesson within a module
type Lesson struct {
	gorm.Model
	ModuleID  uint   `json:"module_id" gorm:"index;not null"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order" gorm:"default:0"` // Order within module
	Kind      string `json:"kind" gorm:"default:'TEXT'"`  // VIDEO, TEXT
	VideoURL  string `json:"video_url"`                   // embed URL, normalized at save time
	PdfURL    string `json:"pdf_url"`
	BodyMD    string `json:"body_md" gorm:"type:text"` // markdown body
	IsDeleted bool   `gorm:"default:false"`
}
