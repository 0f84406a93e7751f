package dto

type EntityResponse struct {
	ID       string     `json:"id"`
	Location [2]float64 `json:"location"`
	Health   float64    `json:"health"`
}

type ListEntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}
