package domain

import "time"

// ResourceType distinguishes the kinds of wellbeing resources.
type ResourceType string

const (
	ResourceTypeArticle ResourceType = "article"
	ResourceTypePDF     ResourceType = "pdf"
	ResourceTypeVideo   ResourceType = "video"
)

// Resource is a wellbeing resource published by a counselor: a written
// article, an uploaded PDF, or a linked video.
type Resource struct {
	ID               string
	Title            string
	Description      string
	Content          string
	Category         string
	Type             ResourceType
	VideoURL         string
	FileName         string
	FilePath         string
	OriginalFileName string
	UploadedBy       string
	CreatedAt        time.Time
}
