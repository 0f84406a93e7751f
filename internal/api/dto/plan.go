package dto

import "encoding/json"

// Omitted fields fall back to the server's configured planner defaults.
// Population, when present, is a graph_data snapshot planned instead of the stored one.
type PlanRequest struct {
	Target         []float64       `json:"target"`
	Threshold      *float64        `json:"threshold"`
	OrderPolicy    string          `json:"order_policy"`
	TieBreakPolicy string          `json:"tiebreak_policy"`
	Population     json.RawMessage `json:"population"`
}

type RelocationPairResponse struct {
	Replaced    string `json:"replaced"`
	Replacement string `json:"replacement"`
}

type LocationResponse struct {
	Location [2]float64 `json:"location"`
	Category string     `json:"category"`
}

type EdgeResponse struct {
	From      [2]float64               `json:"from"`
	To        [2]float64               `json:"to"`
	Label     string                   `json:"label"`
	Transfers []RelocationPairResponse `json:"transfers"`
}

type PlanResponse struct {
	Target         [2]float64               `json:"target"`
	Threshold      float64                  `json:"threshold"`
	Pairs          []RelocationPairResponse `json:"pairs"`
	TotalCost      float64                  `json:"total_cost"`
	Unreplaced     []string                 `json:"unreplaced"`
	BelowThreshold []string                 `json:"below_threshold"`
	DonorPool      []string                 `json:"donor_pool"`
	Locations      []LocationResponse       `json:"locations"`
	Edges          []EdgeResponse           `json:"edges"`
	Fingerprint    string                   `json:"fingerprint"`
	Cached         bool                     `json:"cached"`
}
