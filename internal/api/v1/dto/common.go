package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CountDTO mirrors the embedded-count shape of the managed store: [{"count": n}].
type CountDTO struct {
	Count int `json:"count"`
}

// Counted wraps n in the embedded-count shape.
func Counted(n int) []CountDTO {
	return []CountDTO{{Count: n}}
}

// SiteNameDTO is the embedded owning site of keywords and reports.
type SiteNameDTO struct {
	Name string `json:"name"`
}
