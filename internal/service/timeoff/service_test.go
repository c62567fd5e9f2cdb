package timeoff

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
	"github.com/staffhub-hr/timeoff-backend-go/internal/service/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// serialTxRunner holds a lock for the whole callback, mirroring the row lock
// that serializes concurrent answers against one request.
type serialTxRunner struct {
	mu sync.Mutex
}

func (s *serialTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type fakeRequestRepo struct {
	mu             sync.Mutex
	byID           map[string]*timeoff.Request
	seq            int
	approvedWrites int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*timeoff.Request)}
}

func copyRequest(r *timeoff.Request) timeoff.Request {
	cp := *r
	cp.Approvers = append([]timeoff.Approval(nil), r.Approvers...)
	return cp
}

func (f *fakeRequestRepo) Create(ctx context.Context, r timeoff.Request) (timeoff.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r.ID = fmt.Sprintf("req-%d", f.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	stored := copyRequest(&r)
	f.byID[r.ID] = &stored
	return r, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	return copyRequest(r), nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (timeoff.Request, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) GetByRequesterID(ctx context.Context, requesterID string) ([]timeoff.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timeoff.Request
	for _, r := range f.byID {
		if r.RequesterID == requesterID {
			out = append(out, copyRequest(r))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingForApprover(ctx context.Context, approverID string) ([]timeoff.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timeoff.Request
	for _, r := range f.byID {
		if r.Status.Closed() {
			continue
		}
		for _, a := range r.Approvers {
			if a.ApproverID == approverID && !a.Approved {
				out = append(out, copyRequest(r))
			}
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApprovedForApprover(ctx context.Context, approverID string) ([]timeoff.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timeoff.Request
	for _, r := range f.byID {
		if r.Status != timeoff.StatusApproved {
			continue
		}
		for _, a := range r.Approvers {
			if a.ApproverID == approverID {
				out = append(out, copyRequest(r))
			}
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) HasApprovedLeaveAt(ctx context.Context, userID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.RequesterID == userID && r.Status == timeoff.StatusApproved && r.Contains(at) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, fields timeoff.UpdateRequestFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[fields.ID]
	if !ok {
		return timeoff.ErrRequestNotFound
	}
	if fields.Type != nil {
		r.Type = *fields.Type
	}
	if fields.Description != nil {
		r.Description = *fields.Description
	}
	if fields.StartDate != nil {
		r.StartDate = *fields.StartDate
	}
	if fields.EndDate != nil {
		r.EndDate = *fields.EndDate
	}
	r.UpdatedBy = &fields.UpdatedBy
	r.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status timeoff.RequestStatus, updatedBy *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return timeoff.ErrRequestNotFound
	}
	r.Status = status
	if updatedBy != nil {
		r.UpdatedBy = updatedBy
	}
	r.UpdatedAt = time.Now()
	if status == timeoff.StatusApproved {
		f.approvedWrites++
	}
	return nil
}

func (f *fakeRequestRepo) approvedTransitions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.approvedWrites
}

func (f *fakeRequestRepo) Touch(ctx context.Context, id, updatedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return timeoff.ErrRequestNotFound
	}
	r.UpdatedBy = &updatedBy
	r.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRequestRepo) MarkApproved(ctx context.Context, requestID, approverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[requestID]
	if !ok {
		return timeoff.ErrRequestNotFound
	}
	for i := range r.Approvers {
		if r.Approvers[i].ApproverID == approverID {
			now := time.Now()
			r.Approvers[i].Approved = true
			r.Approvers[i].ApprovedAt = &now
			return nil
		}
	}
	return timeoff.ErrNotApprover
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return timeoff.ErrRequestNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeUserRepo struct {
	byID map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	var out []user.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error)  { return nil, nil }
func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error  { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error    { return nil }
func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID, email string) (user.User, error) {
	return user.User{}, nil
}

type fakeTeamRepo struct {
	teams   []team.Team
	reports map[string][]user.User
}

func (f *fakeTeamRepo) Create(ctx context.Context, t team.Team) (team.Team, error) { return t, nil }
func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (team.Team, error) {
	return team.Team{}, team.ErrTeamNotFound
}
func (f *fakeTeamRepo) List(ctx context.Context) ([]team.Team, error)             { return nil, nil }
func (f *fakeTeamRepo) Update(ctx context.Context, t team.Team) error             { return nil }
func (f *fakeTeamRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeTeamRepo) AddMember(ctx context.Context, teamID, userID string) error { return nil }
func (f *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID string) error {
	return nil
}

func (f *fakeTeamRepo) GetByMemberID(ctx context.Context, userID string) ([]team.Team, error) {
	var out []team.Team
	for _, t := range f.teams {
		for _, m := range t.MemberIDs {
			if m == userID {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListReports(ctx context.Context, leaderID string) ([]user.User, error) {
	return f.reports[leaderID], nil
}

type fakeMailer struct{}

func (fakeMailer) Send(to, subject, htmlBody string) error { return nil }

func (fakeMailer) RenderApprovalRequest(requesterName, requestType, startDate, endDate string) (string, string, error) {
	return "approval-request", requesterName, nil
}

func (fakeMailer) RenderDecision(requesterName, requestType, startDate, endDate string, approved bool) (string, string, error) {
	if approved {
		return "approved", requesterName, nil
	}
	return "rejected", requesterName, nil
}

func (fakeMailer) RenderOutOfOffice(requesterName, startDate, endDate string) (string, string, error) {
	return "out-of-office", requesterName, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (f *fakeNotifier) Enqueue(msgs ...notify.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
}

func (f *fakeNotifier) subjects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m.Subject
	}
	return out
}

func (f *fakeNotifier) recipients(subject string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.msgs {
		if m.Subject == subject {
			out = append(out, m.To)
		}
	}
	return out
}

// ===== SETUP =====

type testEnv struct {
	svc      *Service
	requests *fakeRequestRepo
	users    *fakeUserRepo
	teams    *fakeTeamRepo
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	users := &fakeUserRepo{byID: map[string]user.User{
		"alice": {ID: "alice", Email: "alice@example.com", FullName: "Alice"},
		"bob":   {ID: "bob", Email: "bob@example.com", FullName: "Bob"},
		"carol": {ID: "carol", Email: "carol@example.com", FullName: "Carol"},
		"dave":  {ID: "dave", Email: "dave@example.com", FullName: "Dave"},
	}}
	teams := &fakeTeamRepo{reports: map[string][]user.User{}}
	requests := newFakeRequestRepo()
	notifier := &fakeNotifier{}

	svc := NewService(fakeTxRunner{}, requests, users, teams, fakeMailer{}, notifier)
	return &testEnv{svc: svc, requests: requests, users: users, teams: teams, notifier: notifier}
}

func (e *testEnv) addTeam(id, leaderID string, memberIDs ...string) {
	e.teams.teams = append(e.teams.teams, team.Team{
		ID:        id,
		Name:      id,
		LeaderID:  leaderID,
		MemberIDs: memberIDs,
	})
}

func createPaid(t *testing.T, e *testEnv, requester, start, end string) timeoff.RequestResponse {
	t.Helper()
	resp, err := e.svc.CreateRequest(context.Background(), timeoff.CreateRequestRequest{
		RequesterID: requester,
		Type:        "paid",
		Description: "vacation",
		StartDate:   start,
		EndDate:     end,
	})
	require.NoError(t, err)
	return resp
}

func boolPtr(b bool) *bool { return &b }

// ===== CREATE =====

func TestCreateRequest_NoApprovers_AutoApproved(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	assert.Equal(t, timeoff.StatusApproved, resp.Status)
	assert.Empty(t, resp.Approvers)
}

func TestCreateRequest_SickLeave_SkipsApprovers(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	resp, err := e.svc.CreateRequest(context.Background(), timeoff.CreateRequestRequest{
		RequesterID: "alice",
		Type:        "sick_leave",
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-02",
	})
	require.NoError(t, err)

	assert.Equal(t, timeoff.StatusApproved, resp.Status)
	// Approver set is still recorded even though no sign-off was needed.
	assert.Len(t, resp.Approvers, 1)
}

func TestCreateRequest_WithApprovers_Awaiting(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "carol", "alice", "carol")

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	assert.Equal(t, timeoff.StatusAwaiting, resp.Status)
	require.Len(t, resp.Approvers, 2)
	assert.Equal(t, "bob", resp.Approvers[0].ApproverID)
	assert.Equal(t, "carol", resp.Approvers[1].ApproverID)

	// Both approvers were told a request entered their queue.
	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"},
		e.notifier.recipients("approval-request"))
}

func TestCreateRequest_LeaderOnLeaveExcluded(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	// Bob has approved leave covering the present moment.
	now := time.Now()
	e.requests.byID["existing"] = &timeoff.Request{
		ID:          "existing",
		RequesterID: "bob",
		Status:      timeoff.StatusApproved,
		StartDate:   now.Add(-24 * time.Hour),
		EndDate:     now.Add(24 * time.Hour),
	}

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	// The only candidate approver is away, so the request auto-approves.
	assert.Equal(t, timeoff.StatusApproved, resp.Status)
	assert.Empty(t, resp.Approvers)
}

func TestCreateRequest_DuplicateLeaderCountedOnce(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "bob", "alice", "bob", "carol")

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	require.Len(t, resp.Approvers, 1)
	assert.Equal(t, "bob", resp.Approvers[0].ApproverID)
}

func TestCreateRequest_LeaderNeverApprovesOwnRequest(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	// Alice leads her own team, so she is its enrolled member too.
	e.addTeam("team-1", "alice", "alice", "dave")

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	// With herself excluded there is nobody left to ask.
	assert.Equal(t, timeoff.StatusApproved, resp.Status)
	assert.Empty(t, resp.Approvers)
}

func TestCreateRequest_OverlapBlocked(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.CreateRequest(context.Background(), timeoff.CreateRequestRequest{
		RequesterID: "alice",
		Type:        "paid",
		StartDate:   "2026-07-04",
		EndDate:     "2026-07-10",
	})
	assert.ErrorIs(t, err, timeoff.ErrOverlappingRequest)
}

func TestCreateRequest_RejectedHistoryDoesNotBlock(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	first := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")
	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  first.ID,
		ApproverID: "bob",
		Approved:   boolPtr(false),
	})
	require.NoError(t, err)

	resp := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")
	assert.Equal(t, timeoff.StatusAwaiting, resp.Status)
}

func TestCreateRequest_InvalidDateRange(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	_, err := e.svc.CreateRequest(context.Background(), timeoff.CreateRequestRequest{
		RequesterID: "alice",
		Type:        "paid",
		StartDate:   "2026-07-05",
		EndDate:     "2026-07-01",
	})
	assert.ErrorIs(t, err, timeoff.ErrInvalidDateRange)
}

func TestCreateRequest_UnknownRequester(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	_, err := e.svc.CreateRequest(context.Background(), timeoff.CreateRequestRequest{
		RequesterID: "ghost",
		Type:        "paid",
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-05",
	})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// ===== ANSWER =====

func TestAnswerRequest_PartialThenFullApproval(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "carol", "alice", "carol")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	resp, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusAwaiting, resp.Status)

	resp, err = e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "carol",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, resp.Status)

	// Both approvers were told about the final decision.
	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"},
		e.notifier.recipients("approved"))
}

func TestAnswerRequest_PartialApprovalStampsUpdater(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "carol", "alice", "carol")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)

	// The request stays open, but the stored row records who answered.
	stored, err := e.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusAwaiting, stored.Status)
	require.NotNil(t, stored.UpdatedBy)
	assert.Equal(t, "bob", *stored.UpdatedBy)
}

func TestAnswerRequest_ConcurrentApprovalsConvergeOnce(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "carol", "alice", "carol")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	// Same repositories, but every transaction takes a lock for its whole
	// span, the way the row lock serializes answers in the real store.
	svc := NewService(&serialTxRunner{}, e.requests, e.users, e.teams, fakeMailer{}, e.notifier)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, approver := range []string{"bob", "carol"} {
		wg.Add(1)
		go func(approverID string) {
			defer wg.Done()
			_, err := svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
				RequestID:  created.ID,
				ApproverID: approverID,
				Approved:   boolPtr(true),
			})
			errs <- err
		}(approver)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := e.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, stored.Status)
	// Exactly one answer performed the final transition.
	assert.Equal(t, 1, e.requests.approvedTransitions())
	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"},
		e.notifier.recipients("approved"))
}

func TestAnswerRequest_Reject_TerminalAndKeepsHistory(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	e.addTeam("team-2", "carol", "alice", "carol")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)

	resp, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "carol",
		Approved:   boolPtr(false),
		Reason:     "coverage gap",
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusRejected, resp.Status)

	// Bob's earlier consent stays on the record.
	stored, err := e.svc.GetRequest(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Approvers, 2)
	assert.True(t, stored.Approvers[0].Approved)

	assert.ElementsMatch(t, []string{"bob@example.com", "carol@example.com"},
		e.notifier.recipients("rejected"))
}

func TestAnswerRequest_ClosedRequest(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(false),
	})
	require.NoError(t, err)

	_, err = e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	assert.ErrorIs(t, err, timeoff.ErrRequestClosed)
}

func TestAnswerRequest_NotApprover(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "dave",
		Approved:   boolPtr(true),
	})
	assert.ErrorIs(t, err, timeoff.ErrNotApprover)
}

func TestAnswerRequest_UnknownRequest(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  "missing",
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	assert.ErrorIs(t, err, timeoff.ErrRequestNotFound)
}

func TestAnswerRequest_ApprovalNotifiesReports(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")
	// Alice leads Dave, so Dave hears about her absence.
	e.teams.reports["alice"] = []user.User{{ID: "dave", Email: "dave@example.com", FullName: "Dave"}}

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"dave@example.com"}, e.notifier.recipients("out-of-office"))
}

func TestAnswerRequest_NoReportsNoOutOfOffice(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	_, err := e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)

	assert.NotContains(t, e.notifier.subjects(), "out-of-office")
}

// ===== UPDATE / DELETE =====

func TestUpdateRequest_OverwritesFieldsWithoutRevalidation(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	first := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")
	second := createPaid(t, e, "alice", "2026-08-01", "2026-08-05")

	// Move the second request on top of the first. Edits skip overlap checks.
	newStart := "2026-07-02"
	newDesc := "moved"
	resp, err := e.svc.UpdateRequest(context.Background(), timeoff.UpdateRequestRequest{
		ID:          second.ID,
		UpdaterID:   "alice",
		StartDate:   &newStart,
		Description: &newDesc,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-07-02", resp.StartDate)
	assert.Equal(t, "moved", resp.Description)
	assert.Equal(t, "2026-07-05", first.EndDate)
	// Approver set untouched.
	require.Len(t, resp.Approvers, 1)
	assert.Equal(t, "bob", resp.Approvers[0].ApproverID)
}

func TestUpdateRequest_Unknown(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	desc := "x"
	_, err := e.svc.UpdateRequest(context.Background(), timeoff.UpdateRequestRequest{
		ID:          "missing",
		UpdaterID:   "alice",
		Description: &desc,
	})
	assert.ErrorIs(t, err, timeoff.ErrRequestNotFound)
}

func TestDeleteRequest(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	require.NoError(t, e.svc.DeleteRequest(context.Background(), created.ID))
	assert.ErrorIs(t, e.svc.DeleteRequest(context.Background(), created.ID), timeoff.ErrRequestNotFound)
}

// ===== LISTS =====

func TestListPendingAndGivenApprovals(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	e.addTeam("team-1", "bob", "alice", "bob")

	created := createPaid(t, e, "alice", "2026-07-01", "2026-07-05")

	pending, err := e.svc.ListPendingApprovals(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	_, err = e.svc.AnswerRequest(context.Background(), timeoff.AnswerRequestRequest{
		RequestID:  created.ID,
		ApproverID: "bob",
		Approved:   boolPtr(true),
	})
	require.NoError(t, err)

	pending, err = e.svc.ListPendingApprovals(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, pending)

	given, err := e.svc.ListApprovalsGiven(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, given, 1)
	assert.Equal(t, created.ID, given[0].ID)
}

func TestListMyRequests(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	createPaid(t, e, "alice", "2026-07-01", "2026-07-05")
	createPaid(t, e, "alice", "2026-08-01", "2026-08-05")

	mine, err := e.svc.ListMyRequests(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	other, err := e.svc.ListMyRequests(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, other)
}
