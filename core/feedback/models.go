package feedback

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/hosteldesk/core"
	"github.com/trezcool/hosteldesk/core/complaint"
)

// Feedback types
const (
	TypeAppreciation    = "appreciation"
	TypeConcern         = "concern"
	TypeSuggestion      = "suggestion"
	TypeComplaintStatus = "complaint_status"
)

// Workflow statuses
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusResponded = "responded"
)

var (
	Types        = []string{TypeAppreciation, TypeConcern, TypeSuggestion, TypeComplaintStatus}
	Statuses     = []string{StatusPending, StatusReviewed, StatusResponded}
	Relationship = []string{"Father", "Mother", "Guardian"}
)

// ParentFeedback is one message from a parent to the administration,
// optionally referencing a complaint. It is never deleted.
type ParentFeedback struct {
	ID             string    `json:"id"`
	ParentName     string    `json:"parent_name"`
	ParentEmail    string    `json:"parent_email"`
	Relationship   string    `json:"relationship"`
	ComplaintID    string    `json:"complaint_id,omitempty"`
	ComplaintTitle string    `json:"complaint_title,omitempty"`
	StudentName    string    `json:"student_name,omitempty"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	IsRead         bool      `json:"is_read"`
	AdminReply     string    `json:"admin_reply,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"` // UTC
	RepliedAt      time.Time `json:"replied_at"`   // UTC; zero until responded
}

// NewFeedback contains information needed for a parent submission.
// Status always starts as `pending` and unread.
type NewFeedback struct {
	ParentName     string `json:"parent_name" validate:"required"`
	ParentEmail    string `json:"parent_email" validate:"required,email"`
	Relationship   string `json:"relationship" validate:"required,relationship"`
	ComplaintID    string `json:"complaint_id"`
	ComplaintTitle string `json:"complaint_title"`
	StudentName    string `json:"student_name"`
	Type           string `json:"type" validate:"required,feedbacktype"`
	Message        string `json:"message" validate:"required"`
	Priority       string `json:"priority" validate:"omitempty,complaintpriority"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	nf.ParentName = core.CleanString(nf.ParentName)
	nf.ParentEmail = core.CleanString(nf.ParentEmail, true /* lower */)
	nf.StudentName = core.CleanString(nf.StudentName)

	if err := validate.Struct(nf); err != nil {
		return err
	}
	nf.Priority = core.Capitalize(nf.Priority)
	if nf.Priority == "" {
		nf.Priority = complaint.PriorityMedium
	}
	return nil
}

// Reply is the admin response to a feedback entry.
type Reply struct {
	Reply string `json:"reply" validate:"required"`
}

func (r *Reply) Validate(validate *validator.Validate) error {
	r.Reply = core.CleanString(r.Reply)
	return validate.Struct(r)
}

// QueryFilter applies an AND operation on its set fields.
// Search does a case-insensitive substring match on one of
// ParentName, ParentEmail, StudentName or Message.
type QueryFilter struct {
	Search string `query:"search"`
	Type   string `query:"type"`
	Status string `query:"status"`
	Unread *bool  `query:"unread"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Type == "" && qf.Status == "" && qf.Unread == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Type == "all" {
		qf.Type = ""
	}
	if qf.Status == "all" {
		qf.Status = ""
	}
}
