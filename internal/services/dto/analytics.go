package dto

type Totals struct {
	Users        int64 `json:"users"`
	Ideas        int64 `json:"ideas"`
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
}

// GroupCount keeps the "_id" key of the aggregation output clients already consume.
type GroupCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type AnalyticsResponse struct {
	Totals        Totals       `json:"totals"`
	UsersByRole   []GroupCount `json:"usersByRole"`
	IdeasByStatus []GroupCount `json:"ideasByStatus"`
	JobsByStatus  []GroupCount `json:"jobsByStatus"`
}
