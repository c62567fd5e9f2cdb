package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.Repository {
	return &teamRepositoryImpl{db: db}
}

// Create implements team.Repository.
func (r *teamRepositoryImpl) Create(ctx context.Context, t team.Team) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO teams (name, leader_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, t.Name, t.LeaderID).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return team.Team{}, err
	}

	// The leader is always a member of their own team.
	memberQuery := `
		INSERT INTO team_members (team_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`
	if _, err := q.Exec(ctx, memberQuery, t.ID, t.LeaderID); err != nil {
		return team.Team{}, err
	}

	t.MemberIDs = []string{t.LeaderID}
	return t, nil
}

// GetByID implements team.Repository.
func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, t.leader_id, t.created_at, t.updated_at,
			   u.full_name AS leader_name
		FROM teams t
		JOIN users u ON t.leader_id = u.id
		WHERE t.id = $1
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt, &t.LeaderName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, err
	}

	t.MemberIDs, err = r.memberIDs(ctx, q, t.ID)
	if err != nil {
		return team.Team{}, err
	}
	return t, nil
}

func (r *teamRepositoryImpl) memberIDs(ctx context.Context, q database.Querier, teamID string) ([]string, error) {
	rows, err := q.Query(ctx, `
		SELECT user_id FROM team_members
		WHERE team_id = $1
		ORDER BY created_at
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// List implements team.Repository.
func (r *teamRepositoryImpl) List(ctx context.Context) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, t.leader_id, t.created_at, t.updated_at,
			   u.full_name AS leader_name
		FROM teams t
		JOIN users u ON t.leader_id = u.id
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt, &t.LeaderName); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		teams[i].MemberIDs, err = r.memberIDs(ctx, q, teams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// Update implements team.Repository.
func (r *teamRepositoryImpl) Update(ctx context.Context, t team.Team) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE teams
		SET name = $1, leader_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, t.Name, t.LeaderID, t.ID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return team.ErrTeamNotFound
	}
	return nil
}

// Delete implements team.Repository.
func (r *teamRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return team.ErrTeamNotFound
	}
	return nil
}

// AddMember implements team.Repository.
func (r *teamRepositoryImpl) AddMember(ctx context.Context, teamID string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO team_members (team_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := q.Exec(ctx, query, teamID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return team.ErrAlreadyMember
			case "23503":
				return team.ErrTeamNotFound
			}
		}
		return err
	}
	return nil
}

// RemoveMember implements team.Repository.
func (r *teamRepositoryImpl) RemoveMember(ctx context.Context, teamID string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`

	commandTag, err := q.Exec(ctx, query, teamID, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return team.ErrNotMember
	}
	return nil
}

// GetByMemberID implements team.Repository.
func (r *teamRepositoryImpl) GetByMemberID(ctx context.Context, userID string) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.name, t.leader_id, t.created_at, t.updated_at,
			   u.full_name AS leader_name
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		JOIN users u ON t.leader_id = u.id
		WHERE tm.user_id = $1
		ORDER BY tm.created_at
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt, &t.LeaderName); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		teams[i].MemberIDs, err = r.memberIDs(ctx, q, teams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// ListReports implements team.Repository.
func (r *teamRepositoryImpl) ListReports(ctx context.Context, leaderID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.id, u.email, u.full_name, u.password_hash,
			   u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		JOIN teams t ON t.id = tm.team_id
		WHERE t.leader_id = $1 AND u.id <> $1
		ORDER BY u.full_name
	`

	rows, err := q.Query(ctx, query, leaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
