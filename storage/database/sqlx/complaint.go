package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/hosteldesk/core/complaint"
)

type complaintRow struct {
	ID          string      `db:"id"`
	Title       null.String `db:"title"`
	Description null.String `db:"description"`
	Category    null.String `db:"category"`
	Priority    null.String `db:"priority"`
	Status      null.String `db:"status"`
	StudentID   null.String `db:"student_id"`
	StudentName null.String `db:"student_name"`
	Room        null.String `db:"room"`
	Block       null.String `db:"block"`
	AdminReply  null.String `db:"admin_reply"`
	SubmittedAt null.Time   `db:"submitted_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

func (row complaintRow) unmarshal() complaint.Complaint {
	return complaint.Complaint{
		ID:          row.ID,
		Title:       row.Title.String,
		Description: row.Description.String,
		Category:    row.Category.String,
		Priority:    row.Priority.String,
		Status:      row.Status.String,
		StudentID:   row.StudentID.String,
		StudentName: row.StudentName.String,
		Room:        row.Room.String,
		Block:       row.Block.String,
		AdminReply:  row.AdminReply.String,
		SubmittedAt: row.SubmittedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func marshalComplaint(cpl complaint.Complaint) complaintRow {
	return complaintRow{
		ID:          cpl.ID,
		Title:       null.NewString(cpl.Title, cpl.Title != ""),
		Description: null.NewString(cpl.Description, cpl.Description != ""),
		Category:    null.NewString(cpl.Category, cpl.Category != ""),
		Priority:    null.NewString(cpl.Priority, cpl.Priority != ""),
		Status:      null.NewString(cpl.Status, cpl.Status != ""),
		StudentID:   null.NewString(cpl.StudentID, cpl.StudentID != ""),
		StudentName: null.NewString(cpl.StudentName, cpl.StudentName != ""),
		Room:        null.NewString(cpl.Room, cpl.Room != ""),
		Block:       null.NewString(cpl.Block, cpl.Block != ""),
		AdminReply:  null.NewString(cpl.AdminReply, cpl.AdminReply != ""),
		SubmittedAt: null.NewTime(cpl.SubmittedAt.UTC(), !cpl.SubmittedAt.IsZero()),
		UpdatedAt:   null.NewTime(cpl.UpdatedAt.UTC(), !cpl.UpdatedAt.IsZero()),
	}
}

type complaintRepository struct {
	db *sqlx.DB
}

var _ complaint.Repository = (*complaintRepository)(nil) // interface compliance check

func NewComplaintRepository(db *sqlx.DB) *complaintRepository {
	return &complaintRepository{db: db}
}

func (repo *complaintRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return complaint.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *complaintRepository) CreateComplaint(ctx context.Context, cpl complaint.Complaint) (complaint.Complaint, error) {
	cpl.ID = uuid.New().String()
	row := marshalComplaint(cpl)

	const query = `
		INSERT INTO complaint (id, title, description, category, priority, status,
			student_id, student_name, room, block, admin_reply, submitted_at, updated_at)
		VALUES (:id, :title, :description, :category, :priority, :status,
			:student_id, :student_name, :room, :block, :admin_reply, :submitted_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		return complaint.Complaint{}, errors.Wrap(err, "inserting complaint")
	}
	return cpl, nil
}

func (repo *complaintRepository) QueryAllComplaints(ctx context.Context) ([]complaint.Complaint, error) {
	var rows []complaintRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM complaint ORDER BY submitted_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying complaints")
	}
	return unmarshalComplaints(rows), nil
}

func (repo *complaintRepository) GetComplaintByID(ctx context.Context, id string) (complaint.Complaint, error) {
	if _, err := uuid.Parse(id); err != nil {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	var row complaintRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM complaint WHERE id = $1`, id); err != nil {
		return complaint.Complaint{}, repo.trapNoRowsErr(err, "finding complaint by ID")
	}
	return row.unmarshal(), nil
}

func (repo *complaintRepository) FilterComplaints(ctx context.Context, filter complaint.QueryFilter) ([]complaint.Complaint, error) {
	filter.Clean()

	conds := []string{"TRUE"}
	var args []interface{}

	if filter.Search != "" {
		conds = append(conds, `(title ILIKE ? OR description ILIKE ? OR student_name ILIKE ? OR room ILIKE ?)`)
		val := "%" + filter.Search + "%"
		args = append(args, val, val, val, val)
	}
	if filter.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, filter.Category)
	}
	if filter.Priority != "" {
		conds = append(conds, `LOWER(priority) = LOWER(?)`)
		args = append(args, filter.Priority)
	}
	if filter.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, filter.Status)
	}
	if filter.Block != "" {
		conds = append(conds, `block = ?`)
		args = append(args, filter.Block)
	}

	query := fmt.Sprintf(
		`SELECT * FROM complaint WHERE %s ORDER BY submitted_at DESC`,
		strings.Join(conds, " AND "),
	)

	var rows []complaintRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "filtering complaints")
	}
	return unmarshalComplaints(rows), nil
}

func (repo *complaintRepository) QueryComplaintsByStudent(ctx context.Context, studentID string) ([]complaint.Complaint, error) {
	var rows []complaintRow
	const query = `SELECT * FROM complaint WHERE student_id = $1 ORDER BY submitted_at DESC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying student complaints")
	}
	return unmarshalComplaints(rows), nil
}

func (repo *complaintRepository) UpdateComplaint(ctx context.Context, cpl complaint.Complaint) (complaint.Complaint, error) {
	const query = `
		UPDATE complaint
		SET title = :title, description = :description, category = :category,
			priority = :priority, status = :status, admin_reply = :admin_reply,
			updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, marshalComplaint(cpl))
	if err != nil {
		return complaint.Complaint{}, errors.Wrap(err, "updating complaint")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return complaint.Complaint{}, complaint.ErrNotFound
	}
	return cpl, nil
}

func (repo *complaintRepository) DeleteComplaintsByID(ctx context.Context, ids ...string) error {
	// malformed ids cannot match a UUID column; dropping them keeps the
	// delete idempotent instead of surfacing a driver error
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM complaint WHERE id IN (?)`, valid)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting complaints")
	}
	return nil
}

func unmarshalComplaints(rows []complaintRow) []complaint.Complaint {
	complaints := make([]complaint.Complaint, 0, len(rows))
	for _, row := range rows {
		complaints = append(complaints, row.unmarshal())
	}
	return complaints
}
