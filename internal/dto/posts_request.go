package dto

type CreatePostRequest struct {
	Caption  string `json:"caption" binding:"required"`
	Mentions string `json:"mentions"`
	MediaURL string `json:"media_URL"`
}

type UpdatePostRequest struct {
	Caption  *string `json:"caption"`
	MediaURL *string `json:"media_URL"`
}

// UpdateStatusRequest fields are untyped on purpose: whatever the body
// carries is coerced to text before being stored.
type UpdateStatusRequest struct {
	ImageStatus   interface{} `json:"image_status"`
	CaptionStatus interface{} `json:"caption_status"`
}
