package dto

import "vipdining/shared/constant"

// HealthResponse reports store reachability. Database, TotalRecords and Version are
// only set when the store answered; Error only when it did not.
type HealthResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Database     string `json:"database,omitempty"`
	TotalRecords *int   `json:"totalRecords,omitempty"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp"`
	Version      string `json:"version,omitempty"`
}

func (h *HealthResponse) Healthy() bool {
	return h.Status == constant.HealthStatusHealthy
}
