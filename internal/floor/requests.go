package floor

type TableCreateRequest struct {
	Capacity int `json:"capacity,omitempty"`
}

type TableStatusRequest struct {
	Status string `json:"status"`
}

type TablePositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}
