package dto

import "time"

// ResourceCreateRequest payload for a written resource.
type ResourceCreateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// VideoCreateRequest payload for a linked video resource.
type VideoCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

// ResourceUpdateRequest carries optional fields for a resource update.
type ResourceUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
}

// ResourceResponse is a single resource record.
type ResourceResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Content          string    `json:"content,omitempty"`
	Category         string    `json:"category,omitempty"`
	Type             string    `json:"resource_type"`
	VideoURL         string    `json:"video_url,omitempty"`
	FilePath         string    `json:"filepath,omitempty"`
	OriginalFileName string    `json:"original_filename,omitempty"`
	UploadedBy       string    `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventImageResponse is a single slider image record.
type EventImageResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	FilePath    string    `json:"filepath"`
	UploadedBy  string    `json:"uploaded_by"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageOrderRequest payload for reordering a slider image.
type ImageOrderRequest struct {
	Order *int `json:"order"`
}
