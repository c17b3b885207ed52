package models

type Competitor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
