package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

const postColumns = "id, user_id, job_title, job_category, job_type, location, description, required_skills, experience, number_of_openings, salary, last_apply_date, contact_email, status, created_at"

// CreateJobPostParams holds the fields for creating a job post. An empty
// Status defaults to active.
type CreateJobPostParams struct {
	UserID           string
	JobTitle         string
	JobCategory      string
	JobType          string
	Location         string
	Description      string
	RequiredSkills   sql.NullString
	Experience       sql.NullString
	NumberOfOpenings sql.NullInt64
	Salary           sql.NullInt64
	LastApplyDate    sql.NullTime
	ContactEmail     sql.NullString
	Status           string
}

// CreateJobPost inserts a new job post and returns it.
func (q *Queries) CreateJobPost(ctx context.Context, arg CreateJobPostParams) (model.JobPost, error) {
	status := arg.Status
	if status == "" {
		status = model.PostStatusActive
	}

	p := model.JobPost{
		ID:               uuid.NewString(),
		UserID:           arg.UserID,
		JobTitle:         arg.JobTitle,
		JobCategory:      arg.JobCategory,
		JobType:          arg.JobType,
		Location:         arg.Location,
		Description:      arg.Description,
		RequiredSkills:   arg.RequiredSkills,
		Experience:       arg.Experience,
		NumberOfOpenings: arg.NumberOfOpenings,
		Salary:           arg.Salary,
		LastApplyDate:    arg.LastApplyDate,
		ContactEmail:     arg.ContactEmail,
		Status:           status,
		CreatedAt:        time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO job_posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.UserID, p.JobTitle, p.JobCategory, p.JobType, p.Location, p.Description,
		p.RequiredSkills, p.Experience, p.NumberOfOpenings, p.Salary,
		p.LastApplyDate, p.ContactEmail, p.Status, p.CreatedAt)
	if err != nil {
		return model.JobPost{}, err
	}
	return p, nil
}

// GetJobPost fetches a job post by primary key.
func (q *Queries) GetJobPost(ctx context.Context, id string) (model.JobPost, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+postColumns+" FROM job_posts WHERE id = ?"), id)

	var p model.JobPost
	if err := scanPost(row.Scan, &p); err != nil {
		return model.JobPost{}, notFound(err)
	}
	return p, nil
}

// ListJobPosts returns all job posts, newest first.
func (q *Queries) ListJobPosts(ctx context.Context) ([]model.JobPost, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM job_posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.JobPost
	for rows.Next() {
		var p model.JobPost
		if err := scanPost(rows.Scan, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteJobPost removes a job post, reporting how many rows matched.
func (q *Queries) DeleteJobPost(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind("DELETE FROM job_posts WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanPost(scan func(dest ...any) error, p *model.JobPost) error {
	return scan(&p.ID, &p.UserID, &p.JobTitle, &p.JobCategory, &p.JobType,
		&p.Location, &p.Description, &p.RequiredSkills, &p.Experience,
		&p.NumberOfOpenings, &p.Salary, &p.LastApplyDate, &p.ContactEmail,
		&p.Status, &p.CreatedAt)
}
