package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hosteldesk/core/feedback"
)

type feedbackRow struct {
	ID             string      `db:"id"`
	ParentName     null.String `db:"parent_name"`
	ParentEmail    null.String `db:"parent_email"`
	Relationship   null.String `db:"relationship"`
	ComplaintID    null.String `db:"complaint_id"`
	ComplaintTitle null.String `db:"complaint_title"`
	StudentName    null.String `db:"student_name"`
	Type           null.String `db:"type"`
	Message        null.String `db:"message"`
	Priority       null.String `db:"priority"`
	Status         null.String `db:"status"`
	IsRead         bool        `db:"is_read"`
	AdminReply     null.String `db:"admin_reply"`
	SubmittedAt    null.Time   `db:"submitted_at"`
	RepliedAt      null.Time   `db:"replied_at"`
}

func (row feedbackRow) unmarshal() feedback.ParentFeedback {
	return feedback.ParentFeedback{
		ID:             row.ID,
		ParentName:     row.ParentName.String,
		ParentEmail:    row.ParentEmail.String,
		Relationship:   row.Relationship.String,
		ComplaintID:    row.ComplaintID.String,
		ComplaintTitle: row.ComplaintTitle.String,
		StudentName:    row.StudentName.String,
		Type:           row.Type.String,
		Message:        row.Message.String,
		Priority:       row.Priority.String,
		Status:         row.Status.String,
		IsRead:         row.IsRead,
		AdminReply:     row.AdminReply.String,
		SubmittedAt:    row.SubmittedAt.Time,
		RepliedAt:      row.RepliedAt.Time,
	}
}

func marshalFeedback(fb feedback.ParentFeedback) feedbackRow {
	return feedbackRow{
		ID:             fb.ID,
		ParentName:     null.NewString(fb.ParentName, fb.ParentName != ""),
		ParentEmail:    null.NewString(fb.ParentEmail, fb.ParentEmail != ""),
		Relationship:   null.NewString(fb.Relationship, fb.Relationship != ""),
		ComplaintID:    null.NewString(fb.ComplaintID, fb.ComplaintID != ""),
		ComplaintTitle: null.NewString(fb.ComplaintTitle, fb.ComplaintTitle != ""),
		StudentName:    null.NewString(fb.StudentName, fb.StudentName != ""),
		Type:           null.NewString(fb.Type, fb.Type != ""),
		Message:        null.NewString(fb.Message, fb.Message != ""),
		Priority:       null.NewString(fb.Priority, fb.Priority != ""),
		Status:         null.NewString(fb.Status, fb.Status != ""),
		IsRead:         fb.IsRead,
		AdminReply:     null.NewString(fb.AdminReply, fb.AdminReply != ""),
		SubmittedAt:    null.NewTime(fb.SubmittedAt.UTC(), !fb.SubmittedAt.IsZero()),
		RepliedAt:      null.NewTime(fb.RepliedAt.UTC(), !fb.RepliedAt.IsZero()),
	}
}

type feedbackRepository struct {
	db *sqlx.DB
}

var _ feedback.Repository = (*feedbackRepository)(nil) // interface compliance check

func NewFeedbackRepository(db *sqlx.DB) *feedbackRepository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return feedback.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *feedbackRepository) CreateFeedback(ctx context.Context, fb feedback.ParentFeedback) (feedback.ParentFeedback, error) {
	fb.ID = uuid.New().String()
	row := marshalFeedback(fb)

	const query = `
		INSERT INTO parent_feedback (id, parent_name, parent_email, relationship,
			complaint_id, complaint_title, student_name, type, message, priority,
			status, is_read, admin_reply, submitted_at, replied_at)
		VALUES (:id, :parent_name, :parent_email, :relationship,
			:complaint_id, :complaint_title, :student_name, :type, :message, :priority,
			:status, :is_read, :admin_reply, :submitted_at, :replied_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		return feedback.ParentFeedback{}, errors.Wrap(err, "inserting feedback")
	}
	return fb, nil
}

func (repo *feedbackRepository) QueryAllFeedback(ctx context.Context) ([]feedback.ParentFeedback, error) {
	var rows []feedbackRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM parent_feedback ORDER BY submitted_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying feedback")
	}
	fbs := make([]feedback.ParentFeedback, 0, len(rows))
	for _, row := range rows {
		fbs = append(fbs, row.unmarshal())
	}
	return fbs, nil
}

func (repo *feedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.ParentFeedback, error) {
	if _, err := uuid.Parse(id); err != nil {
		return feedback.ParentFeedback{}, feedback.ErrNotFound
	}
	var row feedbackRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM parent_feedback WHERE id = $1`, id); err != nil {
		return feedback.ParentFeedback{}, repo.trapNoRowsErr(err, "finding feedback by ID")
	}
	return row.unmarshal(), nil
}

func (repo *feedbackRepository) UpdateFeedback(ctx context.Context, fb feedback.ParentFeedback) (feedback.ParentFeedback, error) {
	const query = `
		UPDATE parent_feedback
		SET status = :status, is_read = :is_read, admin_reply = :admin_reply,
			replied_at = :replied_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, marshalFeedback(fb))
	if err != nil {
		return feedback.ParentFeedback{}, errors.Wrap(err, "updating feedback")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return feedback.ParentFeedback{}, feedback.ErrNotFound
	}
	return fb, nil
}
