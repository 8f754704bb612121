package dto

type TotalCommentsResponse struct {
	TotalComments int64 `json:"total_comments"`
}
