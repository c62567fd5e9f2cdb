package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/database"
)

type timeoffRequestRepositoryImpl struct {
	db *database.DB
}

func NewTimeoffRequestRepository(db *database.DB) timeoff.RequestRepository {
	return &timeoffRequestRepositoryImpl{db: db}
}

const requestColumns = `
	r.id, r.requester_id, r.type, r.description,
	r.start_date, r.end_date, r.status,
	r.created_by, r.updated_by, r.created_at, r.updated_at,
	u.full_name AS requester_name
`

func scanRequest(row pgx.Row) (timeoff.Request, error) {
	var req timeoff.Request
	err := row.Scan(
		&req.ID,
		&req.RequesterID,
		&req.Type,
		&req.Description,
		&req.StartDate,
		&req.EndDate,
		&req.Status,
		&req.CreatedBy,
		&req.UpdatedBy,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.RequesterName,
	)
	return req, err
}

// Create implements timeoff.RequestRepository. The request row and its
// approver rows are written with the same querier, so callers running inside
// a transaction get both or neither.
func (r *timeoffRequestRepositoryImpl) Create(ctx context.Context, request timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.New().String()

	query := `
		INSERT INTO timeoff_requests (
			id, requester_id, type, description,
			start_date, end_date, status,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.RequesterID, request.Type, request.Description,
		request.StartDate, request.EndDate, request.Status,
		request.CreatedBy,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return timeoff.Request{}, err
	}

	approverQuery := `
		INSERT INTO request_approvers (request_id, approver_id, position, approved)
		VALUES ($1, $2, $3, false)
	`
	for _, a := range request.Approvers {
		if _, err := q.Exec(ctx, approverQuery, request.ID, a.ApproverID, a.Position); err != nil {
			return timeoff.Request{}, err
		}
	}

	return request, nil
}

// GetByID implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements timeoff.RequestRepository. The row lock
// serializes concurrent answers against the same request until the enclosing
// transaction commits.
func (r *timeoffRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (timeoff.Request, error) {
	return r.getByID(ctx, id, true)
}

func (r *timeoffRequestRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM timeoff_requests r
		JOIN users u ON r.requester_id = u.id
		WHERE r.id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE OF r`
	}

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, err
	}

	req.Approvers, err = r.approvers(ctx, q, req.ID)
	if err != nil {
		return timeoff.Request{}, err
	}
	return req, nil
}

func (r *timeoffRequestRepositoryImpl) approvers(ctx context.Context, q database.Querier, requestID string) ([]timeoff.Approval, error) {
	rows, err := q.Query(ctx, `
		SELECT approver_id, position, approved, approved_at
		FROM request_approvers
		WHERE request_id = $1
		ORDER BY position
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var approvals []timeoff.Approval
	for rows.Next() {
		var a timeoff.Approval
		if err := rows.Scan(&a.ApproverID, &a.Position, &a.Approved, &a.ApprovedAt); err != nil {
			return nil, err
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}

func (r *timeoffRequestRepositoryImpl) queryRequests(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]timeoff.Request, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []timeoff.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Approvers, err = r.approvers(ctx, q, requests[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return requests, nil
}

// GetByRequesterID implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) GetByRequesterID(ctx context.Context, requesterID string) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM timeoff_requests r
		JOIN users u ON r.requester_id = u.id
		WHERE r.requester_id = $1
		ORDER BY r.start_date DESC
	`
	return r.queryRequests(ctx, q, query, requesterID)
}

// ListPendingForApprover implements timeoff.RequestRepository. Pending means
// the request is still open and this approver has not consented yet.
func (r *timeoffRequestRepositoryImpl) ListPendingForApprover(ctx context.Context, approverID string) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM timeoff_requests r
		JOIN users u ON r.requester_id = u.id
		JOIN request_approvers ra ON ra.request_id = r.id
		WHERE ra.approver_id = $1
		  AND ra.approved = false
		  AND r.status IN ('created', 'awaiting')
		ORDER BY r.created_at
	`
	return r.queryRequests(ctx, q, query, approverID)
}

// ListApprovedForApprover implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) ListApprovedForApprover(ctx context.Context, approverID string) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM timeoff_requests r
		JOIN users u ON r.requester_id = u.id
		JOIN request_approvers ra ON ra.request_id = r.id
		WHERE ra.approver_id = $1
		  AND r.status = 'approved'
		ORDER BY r.start_date DESC
	`
	return r.queryRequests(ctx, q, query, approverID)
}

// HasApprovedLeaveAt implements timeoff.RequestRepository. Intervals are
// half-open, so a request ending exactly at the instant does not count.
func (r *timeoffRequestRepositoryImpl) HasApprovedLeaveAt(ctx context.Context, userID string, at time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM timeoff_requests
			WHERE requester_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date > $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, at).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements timeoff.RequestRepository. Only the non-nil fields are
// written; COALESCE keeps the stored value otherwise.
func (r *timeoffRequestRepositoryImpl) Update(ctx context.Context, fields timeoff.UpdateRequestFields) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timeoff_requests
		SET type = COALESCE($1, type),
			description = COALESCE($2, description),
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date),
			updated_by = $5,
			updated_at = NOW()
		WHERE id = $6
	`

	commandTag, err := q.Exec(ctx, query,
		fields.Type, fields.Description, fields.StartDate, fields.EndDate,
		fields.UpdatedBy, fields.ID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}

// UpdateStatus implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timeoff.RequestStatus, updatedBy *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timeoff_requests
		SET status = $1, updated_by = COALESCE($2, updated_by), updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, status, updatedBy, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}

// Touch implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) Touch(ctx context.Context, id, updatedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timeoff_requests
		SET updated_by = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, updatedBy, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}

// MarkApproved implements timeoff.RequestRepository.
func (r *timeoffRequestRepositoryImpl) MarkApproved(ctx context.Context, requestID string, approverID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE request_approvers
		SET approved = true, approved_at = NOW()
		WHERE request_id = $1 AND approver_id = $2
	`

	commandTag, err := q.Exec(ctx, query, requestID, approverID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrNotApprover
	}
	return nil
}

// Delete implements timeoff.RequestRepository. Approver rows go with the
// request via ON DELETE CASCADE.
func (r *timeoffRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM timeoff_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}
	return nil
}
