package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/hosteldesk/core/complaint"
	"github.com/trezcool/hosteldesk/core/feedback"
	"github.com/trezcool/hosteldesk/core/user"
)

type UserOptions struct {
	Mobile       string
	StudentID    string
	Room         string
	Block        string
	Relationship string
	CreatedAt    time.Time
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	roles []string,
	isActive bool,
	opts ...UserOptions,
) user.User {
	t.Helper()

	var o UserOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	tstamp := time.Now().UTC()
	if !o.CreatedAt.IsZero() {
		tstamp = o.CreatedAt.UTC()
	}

	usr := user.User{
		Name:         name,
		Email:        email,
		Mobile:       o.Mobile,
		StudentID:    o.StudentID,
		Room:         o.Room,
		Block:        o.Block,
		Relationship: o.Relationship,
		Roles:        roles,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateComplaint(
	t *testing.T,
	repo complaint.Repository,
	owner user.User,
	title, category, priority, status string,
	submittedAt ...time.Time,
) complaint.Complaint {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(submittedAt) > 0 {
		tstamp = submittedAt[0].UTC()
	}
	cpl := complaint.Complaint{
		Title:       title,
		Description: title + " description",
		Category:    category,
		Priority:    priority,
		Status:      status,
		StudentID:   owner.Identity(),
		StudentName: owner.Name,
		Room:        owner.Room,
		Block:       owner.Block,
		SubmittedAt: tstamp,
		UpdatedAt:   tstamp,
	}
	cpl, err := repo.CreateComplaint(context.Background(), cpl)
	if err != nil {
		t.Fatalf("CreateComplaint(): %v", err)
	}
	return cpl
}

func CreateFeedback(
	t *testing.T,
	repo feedback.Repository,
	parentName, parentEmail, relationship, fbType, message string,
) feedback.ParentFeedback {
	t.Helper()

	fb := feedback.ParentFeedback{
		ParentName:   parentName,
		ParentEmail:  parentEmail,
		Relationship: relationship,
		Type:         fbType,
		Message:      message,
		Priority:     complaint.PriorityMedium,
		Status:       feedback.StatusPending,
		SubmittedAt:  time.Now().UTC(),
	}
	fb, err := repo.CreateFeedback(context.Background(), fb)
	if err != nil {
		t.Fatalf("CreateFeedback(): %v", err)
	}
	return fb
}
