package api

// List is a task list record. Version increments monotonically on the
// server and drives optimistic consistency for task mutations; this client
// carries it but never enforces it.
type List struct {
	ListID        string `json:"list_id"`
	UserID        string `json:"user_id"`
	ListName      string `json:"list_name"`
	CreatedAt     string `json:"created_at"`
	LastUpdatedAt string `json:"last_updated_at"`
	Version       int    `json:"version"`
}

// Task is a single task within a list.
type Task struct {
	UserID      string   `json:"user_id"`
	ListID      string   `json:"list_id"`
	TaskID      string   `json:"task_id"`
	TaskName    string   `json:"task_name"`
	Reminders   []string `json:"reminders"`
	IsComplete  bool     `json:"isComplete"`
	IsPriority  bool     `json:"isPriority"`
	IsRecurring bool     `json:"isRecurring"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	Description string   `json:"description,omitempty"`
}

// CreateUserRequest provisions a backend account. Password is a fixed
// placeholder for externally authenticated accounts.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	GoogleID    string `json:"google_id"`
}

// UpdateUserRequest is a partial account update; nil fields are untouched.
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
}

type CreateListRequest struct {
	UserID   string `json:"user_id"`
	ListName string `json:"list_name"`
}

// UpdateListRequest is a partial list update; nil fields are untouched.
type UpdateListRequest struct {
	ListName *string `json:"list_name,omitempty"`
}

// DeleteListResponse acknowledges a list deletion.
type DeleteListResponse struct {
	Message string `json:"message"`
	ListID  string `json:"list_id"`
}

// CreateTaskRequest creates a task against a specific list version.
type CreateTaskRequest struct {
	UserID      string   `json:"user_id"`
	ListID      string   `json:"list_id"`
	TaskName    string   `json:"task_name"`
	Reminders   []string `json:"reminders"`
	IsPriority  bool     `json:"isPriority"`
	IsRecurring bool     `json:"isRecurring"`
	ListVersion int      `json:"list_version"`
	Description string   `json:"description,omitempty"`
}

// UpdateTaskRequest is a partial task update; nil fields are untouched.
type UpdateTaskRequest struct {
	TaskName    *string   `json:"task_name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Reminders   *[]string `json:"reminders,omitempty"`
	IsPriority  *bool     `json:"isPriority,omitempty"`
	IsRecurring *bool     `json:"isRecurring,omitempty"`
	IsComplete  *bool     `json:"isComplete,omitempty"`
}
