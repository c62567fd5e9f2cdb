package team

import (
	"context"
	"fmt"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
)

type Service struct {
	teams team.Repository
	users user.Repository
}

func NewService(teams team.Repository, users user.Repository) *Service {
	return &Service{teams: teams, users: users}
}

// Create makes a new team led by the given user. The leader joins the member
// list automatically.
func (s *Service) Create(ctx context.Context, req team.CreateTeamRequest) (team.TeamResponse, error) {
	leader, err := s.users.GetByID(ctx, req.LeaderID)
	if err != nil {
		return team.TeamResponse{}, err
	}

	created, err := s.teams.Create(ctx, team.Team{
		Name:     req.Name,
		LeaderID: leader.ID,
	})
	if err != nil {
		return team.TeamResponse{}, fmt.Errorf("failed to create team: %w", err)
	}

	created.LeaderName = &leader.FullName
	return team.ToResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (team.TeamResponse, error) {
	t, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.TeamResponse{}, err
	}
	return team.ToResponse(t), nil
}

func (s *Service) List(ctx context.Context) ([]team.TeamResponse, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]team.TeamResponse, len(teams))
	for i, t := range teams {
		responses[i] = team.ToResponse(t)
	}
	return responses, nil
}

// Update renames a team or hands it to a new leader.
func (s *Service) Update(ctx context.Context, req team.UpdateTeamRequest) (team.TeamResponse, error) {
	t, err := s.teams.GetByID(ctx, req.ID)
	if err != nil {
		return team.TeamResponse{}, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.LeaderID != nil {
		leader, err := s.users.GetByID(ctx, *req.LeaderID)
		if err != nil {
			return team.TeamResponse{}, err
		}
		t.LeaderID = leader.ID
		t.LeaderName = &leader.FullName
	}

	if err := s.teams.Update(ctx, t); err != nil {
		return team.TeamResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.teams.Delete(ctx, id)
}

// AddMember puts a user on a team.
func (s *Service) AddMember(ctx context.Context, req team.MembershipRequest) error {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return err
	}
	return s.teams.AddMember(ctx, req.TeamID, req.UserID)
}

// RemoveMember takes a user off a team.
func (s *Service) RemoveMember(ctx context.Context, req team.MembershipRequest) error {
	return s.teams.RemoveMember(ctx, req.TeamID, req.UserID)
}

// ListForUser returns the teams a user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]team.TeamResponse, error) {
	teams, err := s.teams.GetByMemberID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]team.TeamResponse, len(teams))
	for i, t := range teams {
		responses[i] = team.ToResponse(t)
	}
	return responses, nil
}
