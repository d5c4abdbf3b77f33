package model

// DateLayout is the ISO calendar date format used for review dates and
// booking check-in/check-out.
const DateLayout = "2006-01-02"

// Review is immutable once created. RoomType is a free-text label naming the
// room or hall that was reviewed, not a reference to one.
type Review struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Image        string `json:"image,omitempty"`
	Date         string `json:"date"`
	RoomType     string `json:"roomType,omitempty"`
}

// NewReview is a review as submitted by a guest, before an id and date are
// assigned.
type NewReview struct {
	CustomerName string `json:"customerName" validate:"required,min=2,max=100"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required,min=1,max=2000"`
	Image        string `json:"image,omitempty" validate:"omitempty,url"`
	RoomType     string `json:"roomType,omitempty" validate:"omitempty,max=100"`
}
