package inmemdb

import (
	"sync"

	"github.com/trezcool/hosteldesk/core/complaint"
	"github.com/trezcool/hosteldesk/core/feedback"
	"github.com/trezcool/hosteldesk/core/user"
)

type (
	DB struct {
		user      *userTable
		complaint *complaintTable
		feedback  *feedbackTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	complaintTable struct {
		sync.RWMutex
		table map[string]*complaint.Complaint
	}

	feedbackTable struct {
		sync.RWMutex
		table map[string]*feedback.ParentFeedback
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:      &userTable{table: make(map[string]*user.User)},
		complaint: &complaintTable{table: make(map[string]*complaint.Complaint)},
		feedback:  &feedbackTable{table: make(map[string]*feedback.ParentFeedback)},
	}
	return db, nil
}
