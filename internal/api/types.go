package api

// WorkoutType is a reusable category applied to workout logs.
// ID and Sequence are server-assigned.
type WorkoutType struct {
	ID       string `json:"id"`
	Sequence int    `json:"sequence"`
	Name     string `json:"name"`
}

// WorkoutLog is a single recorded exercise session. WorkoutType is an
// embedded snapshot taken at create/edit time, not a live reference:
// later edits to the type do not rewrite logs already loaded.
type WorkoutLog struct {
	ID          string      `json:"id"`
	Sequence    int         `json:"sequence"`
	Date        string      `json:"date"` // ISO calendar date, no time component
	WorkoutType WorkoutType `json:"workoutType"`
	Minutes     int         `json:"minutes"`
}

// User is the identity returned by the /_me endpoint. Read-only.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	RoleIDs []string `json:"roleIds"`
}

// Meta is the list-envelope metadata block.
type Meta struct {
	Count int `json:"count"`
}

// WorkoutTypeList is the raw envelope returned by GET /workoutType.
type WorkoutTypeList struct {
	Data []WorkoutType `json:"data"`
	Meta Meta          `json:"meta"`
}

// WorkoutLogList is the raw envelope returned by GET /workoutLog.
type WorkoutLogList struct {
	Data []WorkoutLog `json:"data"`
	Meta Meta         `json:"meta"`
}

// CreateWorkoutTypeRequest carries the user-editable fields of a workout
// type. Server-assigned fields (id, sequence) are never sent.
type CreateWorkoutTypeRequest struct {
	Name string `json:"name"`
}

// CreateWorkoutLogRequest carries the user-editable fields of a workout log.
type CreateWorkoutLogRequest struct {
	Date        string      `json:"date"`
	WorkoutType WorkoutType `json:"workoutType"`
	Minutes     int         `json:"minutes"`
}
