package team

import "time"

// Team entity. Membership lives in the team_members table; MemberIDs is a
// join field populated by the repository.
type Team struct {
	ID        string
	Name      string
	LeaderID  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	MemberIDs  []string
	LeaderName *string
}
