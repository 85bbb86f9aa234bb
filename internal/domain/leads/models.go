package leads

const Collection = "leads"

const (
	StatusWarm          = "Warm"
	StatusCold          = "Cold"
	StatusClosed        = "Closed"
	StatusNotInterested = "Not interested"
	StatusConverted     = "Converted"
)

type Lead struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LastRemark string `json:"lastRemark"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	Name       *string
	LastRemark *string
	Email      *string
	Phone      *string
	Status     *string
}

func ValidStatus(status string) bool {
	switch status {
	case StatusWarm, StatusCold, StatusClosed, StatusNotInterested, StatusConverted:
		return true
	default:
		return false
	}
}
