package team

import (
	"context"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
)

// Repository - interface for the teams and team_members tables. It doubles as
// the directory capability of the approval workflow: which teams a user
// belongs to, who leads them, and who reports under a given leader.
type Repository interface {
	Create(ctx context.Context, t Team) (Team, error)
	GetByID(ctx context.Context, id string) (Team, error)
	List(ctx context.Context) ([]Team, error)
	Update(ctx context.Context, t Team) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID string) error

	// GetByMemberID returns the teams a user belongs to, oldest membership first.
	GetByMemberID(ctx context.Context, userID string) ([]Team, error)
	// ListReports returns the distinct members of every team led by leaderID,
	// excluding the leader themself.
	ListReports(ctx context.Context, leaderID string) ([]user.User, error)
}
