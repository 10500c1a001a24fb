package dto

type CreateFilmRequest struct {
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     int    `json:"year"`
}
