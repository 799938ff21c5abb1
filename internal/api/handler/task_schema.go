package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses of the task and user endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope used by the auth endpoints and by
// confirmation-style responses, matching the contract of the web client.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createTaskRequest struct {
	Title     string   `json:"title"     validate:"required"`
	Text      string   `json:"text"      validate:"required"`
	Status    string   `json:"status"    validate:"omitempty,oneof='not started' 'in progress' 'completed'"`
	Assignees []string `json:"assignees"`
}

// updateTaskRequest is a partial update: absent fields stay untouched, which
// is why every field is a pointer.
type updateTaskRequest struct {
	Title     *string   `json:"title"`
	Text      *string   `json:"text"`
	Status    *string   `json:"status" validate:"omitempty,oneof='not started' 'in progress' 'completed'"`
	Assignees *[]string `json:"assignees"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
