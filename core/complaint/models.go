package complaint

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hosteldesk/core"
)

// Statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Priorities
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

var (
	Statuses   = []string{StatusPending, StatusInProgress, StatusResolved}
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
	Categories = []string{"Maintenance", "Cleanliness", "Noise", "Food", "Security", "Technical", "Other"}
)

// Complaint represents one submitted issue. StudentID is the owner partition
// key (the resident's student number, or their email for legacy rows); only
// the owner and admins may see or mutate a complaint.
type Complaint struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"` // High | Medium | Low
	Status      string    `json:"status"`   // pending | in-progress | resolved
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Room        string    `json:"room"`
	Block       string    `json:"block"`
	AdminReply  string    `json:"admin_reply,omitempty"` // single slot; a new reply overwrites
	SubmittedAt time.Time `json:"submitted_at"`          // UTC
	UpdatedAt   time.Time `json:"updated_at"`            // UTC
}

// NewComplaint contains information needed to submit a new Complaint.
// Status is fixed to `pending` by the service.
type NewComplaint struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,complaintcategory"`
	Priority    string `json:"priority" validate:"required,complaintpriority"`
	Room        string `json:"room" validate:"required"`
	Block       string `json:"block" validate:"required"`
}

func (nc *NewComplaint) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Priority = core.Capitalize(core.CleanString(nc.Priority, true /* lower */))
	return validate.Struct(nc)
}

// UpdateStatus defines an admin status transition, optionally carrying
// notes that overwrite the admin reply slot.
type UpdateStatus struct {
	Status string `json:"status" validate:"required,complaintstatus"`
	Notes  string `json:"notes"`
}

func (us *UpdateStatus) Validate(validate *validator.Validate) error {
	us.Status = core.CleanString(us.Status, true /* lower */)
	us.Notes = core.CleanString(us.Notes)
	return validate.Struct(us)
}

type Reply struct {
	Reply string `json:"reply" validate:"required"`
}

func (r *Reply) Validate(validate *validator.Validate) error {
	r.Reply = core.CleanString(r.Reply)
	return validate.Struct(r)
}

// QueryFilter applies an AND operation on its set fields; the sentinel value
// "all" (or an empty string) disables a predicate. Search does a
// case-insensitive substring match on one of Title, Description, StudentName
// or Room.
type QueryFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
	Block    string `query:"block"`
}

const filterAll = "all"

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.Status == "" && qf.Priority == "" && qf.Block == ""
}

// Clean normalizes the sentinel "all" to the empty string.
func (qf *QueryFilter) Clean() {
	norm := func(s string) string {
		s = core.CleanString(s)
		if s == filterAll {
			return ""
		}
		return s
	}
	qf.Search = core.CleanString(qf.Search)
	qf.Category = norm(qf.Category)
	qf.Status = norm(qf.Status)
	qf.Priority = norm(qf.Priority)
	qf.Block = norm(qf.Block)
}

// Stats are the derived complaint counters; recomputed on demand, never stored.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
}
