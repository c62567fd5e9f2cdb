package timeoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/team"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/timeoff"
	"github.com/staffhub-hr/timeoff-backend-go/internal/domain/user"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/email"
	"github.com/staffhub-hr/timeoff-backend-go/internal/service/notify"
)

const dateLayout = "2006-01-02"

// Notifier receives messages collected during a transition. Delivery happens
// after the transaction commits and never rolls a transition back.
type Notifier interface {
	Enqueue(msgs ...notify.Message)
}

// Service owns the request lifecycle: creation, approval bookkeeping, and the
// transitions between open and terminal statuses.
type Service struct {
	tx       database.TxRunner
	requests timeoff.RequestRepository
	users    user.Repository
	teams    team.Repository
	mailer   email.EmailService
	notifier Notifier

	now func() time.Time
}

func NewService(
	tx database.TxRunner,
	requests timeoff.RequestRepository,
	users user.Repository,
	teams team.Repository,
	mailer email.EmailService,
	notifier Notifier,
) *Service {
	return &Service{
		tx:       tx,
		requests: requests,
		users:    users,
		teams:    teams,
		mailer:   mailer,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateRequest validates the candidate request against the requester's
// history, derives the approver set, persists both, and immediately evaluates
// the new request so zero-approver and sick-leave requests resolve without
// waiting for input.
func (s *Service) CreateRequest(ctx context.Context, req timeoff.CreateRequestRequest) (timeoff.RequestResponse, error) {
	requester, err := s.users.GetByID(ctx, req.RequesterID)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	history, err := s.requests.GetByRequesterID(ctx, req.RequesterID)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to load requester history: %w", err)
	}

	if err := ValidateRequestDates(startDate, endDate, history); err != nil {
		return timeoff.RequestResponse{}, err
	}

	approvers, err := s.deriveApprovers(ctx, req.RequesterID)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to derive approvers: %w", err)
	}

	request := timeoff.Request{
		RequesterID:   req.RequesterID,
		Type:          timeoff.RequestType(req.Type),
		Description:   req.Description,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        timeoff.StatusCreated,
		CreatedBy:     req.RequesterID,
		Approvers:     approvers,
		RequesterName: &requester.FullName,
	}

	var created timeoff.Request
	var msgs []notify.Message
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err = s.requests.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return s.evaluate(txCtx, &created, &msgs)
	})
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	s.notifier.Enqueue(msgs...)
	return timeoff.ToResponse(created), nil
}

// deriveApprovers resolves the leaders of every team the user belongs to,
// in membership order without duplicates. The user never approves their own
// request, and a leader who is on approved leave right now is skipped. An
// empty result is allowed.
func (s *Service) deriveApprovers(ctx context.Context, userID string) ([]timeoff.Approval, error) {
	teams, err := s.teams.GetByMemberID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var approvers []timeoff.Approval
	seen := make(map[string]bool)
	for _, t := range teams {
		if t.LeaderID == userID || seen[t.LeaderID] {
			continue
		}
		seen[t.LeaderID] = true

		away, err := s.requests.HasApprovedLeaveAt(ctx, t.LeaderID, s.now())
		if err != nil {
			return nil, err
		}
		if away {
			continue
		}

		approvers = append(approvers, timeoff.Approval{
			ApproverID: t.LeaderID,
			Position:   len(approvers),
		})
	}
	return approvers, nil
}

// AnswerRequest records one approver's decision. A reject is terminal for the
// whole request; an approve may complete the approval and is re-evaluated
// under the same row lock so concurrent answers cannot both skip the final
// transition.
func (s *Service) AnswerRequest(ctx context.Context, req timeoff.AnswerRequestRequest) (timeoff.RequestResponse, error) {
	var answered timeoff.Request
	var msgs []notify.Message

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		request, err := s.requests.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status.Closed() {
			return timeoff.ErrRequestClosed
		}
		if !request.IsApprover(req.ApproverID) {
			return timeoff.ErrNotApprover
		}

		request.UpdatedBy = &req.ApproverID

		if !*req.Approved {
			if err := s.requests.UpdateStatus(txCtx, request.ID, timeoff.StatusRejected, &req.ApproverID); err != nil {
				return err
			}
			request.Status = timeoff.StatusRejected
			s.appendDecisionMessages(txCtx, &request, false, &msgs)
			answered = request
			return nil
		}

		if err := s.requests.MarkApproved(txCtx, request.ID, req.ApproverID); err != nil {
			return err
		}
		approvedAt := s.now()
		for i := range request.Approvers {
			if request.Approvers[i].ApproverID == req.ApproverID {
				request.Approvers[i].Approved = true
				request.Approvers[i].ApprovedAt = &approvedAt
			}
		}

		if err := s.evaluate(txCtx, &request, &msgs); err != nil {
			return err
		}
		answered = request
		return nil
	})
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	s.notifier.Enqueue(msgs...)
	return timeoff.ToResponse(answered), nil
}

// evaluate is the single transition entry point. Terminal statuses pass
// through untouched. The sick-leave short-circuit comes before the
// approver-count check, and a full (or empty) approver set resolves to
// approved.
func (s *Service) evaluate(ctx context.Context, request *timeoff.Request, msgs *[]notify.Message) error {
	if request.Status.Closed() {
		return nil
	}

	if request.Type == timeoff.TypeSickLeave || request.ApprovedCount() == len(request.Approvers) {
		return s.approve(ctx, request, msgs)
	}

	if request.Status != timeoff.StatusAwaiting {
		if err := s.requests.UpdateStatus(ctx, request.ID, timeoff.StatusAwaiting, request.UpdatedBy); err != nil {
			return err
		}
		// First evaluation: tell the approvers a request entered their queue.
		s.appendApprovalRequestMessages(ctx, request, msgs)
		request.Status = timeoff.StatusAwaiting
	} else if request.UpdatedBy != nil {
		// Partial approval leaves the status alone but still stamps who
		// answered and when.
		if err := s.requests.Touch(ctx, request.ID, *request.UpdatedBy); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) approve(ctx context.Context, request *timeoff.Request, msgs *[]notify.Message) error {
	if err := s.requests.UpdateStatus(ctx, request.ID, timeoff.StatusApproved, request.UpdatedBy); err != nil {
		return err
	}
	request.Status = timeoff.StatusApproved

	s.appendDecisionMessages(ctx, request, true, msgs)
	s.appendOutOfOfficeMessages(ctx, request, msgs)
	return nil
}

func (s *Service) requesterName(request *timeoff.Request) string {
	if request.RequesterName != nil {
		return *request.RequesterName
	}
	return request.RequesterID
}

func (s *Service) approverEmails(ctx context.Context, request *timeoff.Request) []string {
	ids := make([]string, len(request.Approvers))
	for i, a := range request.Approvers {
		ids[i] = a.ApproverID
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		slog.Error("Failed to resolve approver emails", "request_id", request.ID, "error", err)
		return nil
	}
	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	return emails
}

func (s *Service) appendApprovalRequestMessages(ctx context.Context, request *timeoff.Request, msgs *[]notify.Message) {
	subject, body, err := s.mailer.RenderApprovalRequest(
		s.requesterName(request), string(request.Type),
		request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout),
	)
	if err != nil {
		slog.Error("Failed to render approval request notice", "request_id", request.ID, "error", err)
		return
	}
	for _, addr := range s.approverEmails(ctx, request) {
		*msgs = append(*msgs, notify.Message{To: addr, Subject: subject, Body: body})
	}
}

func (s *Service) appendDecisionMessages(ctx context.Context, request *timeoff.Request, approved bool, msgs *[]notify.Message) {
	subject, body, err := s.mailer.RenderDecision(
		s.requesterName(request), string(request.Type),
		request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout),
		approved,
	)
	if err != nil {
		slog.Error("Failed to render decision notice", "request_id", request.ID, "error", err)
		return
	}
	for _, addr := range s.approverEmails(ctx, request) {
		*msgs = append(*msgs, notify.Message{To: addr, Subject: subject, Body: body})
	}
}

// appendOutOfOfficeMessages tells everyone reporting under the requester that
// their lead will be away. Skipped when the requester leads nobody.
func (s *Service) appendOutOfOfficeMessages(ctx context.Context, request *timeoff.Request, msgs *[]notify.Message) {
	reports, err := s.teams.ListReports(ctx, request.RequesterID)
	if err != nil {
		slog.Error("Failed to resolve reports for out-of-office notice", "request_id", request.ID, "error", err)
		return
	}
	if len(reports) == 0 {
		return
	}

	subject, body, err := s.mailer.RenderOutOfOffice(
		s.requesterName(request),
		request.StartDate.Format(dateLayout), request.EndDate.Format(dateLayout),
	)
	if err != nil {
		slog.Error("Failed to render out-of-office notice", "request_id", request.ID, "error", err)
		return
	}
	for _, u := range reports {
		*msgs = append(*msgs, notify.Message{To: u.Email, Subject: subject, Body: body})
	}
}

// UpdateRequest overwrites description, type, and dates of an existing
// request and stamps the updater. Dates are not re-validated and approvers
// are not re-derived: edits are metadata corrections on an open request.
func (s *Service) UpdateRequest(ctx context.Context, req timeoff.UpdateRequestRequest) (timeoff.RequestResponse, error) {
	fields := timeoff.UpdateRequestFields{
		ID:          req.ID,
		Description: req.Description,
		UpdatedBy:   req.UpdaterID,
	}

	if req.Type != nil {
		t := timeoff.RequestType(*req.Type)
		fields.Type = &t
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return timeoff.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
		}
		fields.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return timeoff.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		fields.EndDate = &endDate
	}

	if err := s.requests.Update(ctx, fields); err != nil {
		return timeoff.RequestResponse{}, err
	}

	updated, err := s.requests.GetByID(ctx, req.ID)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	return timeoff.ToResponse(updated), nil
}

// DeleteRequest removes a request outright. No notification is sent.
func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	return s.requests.Delete(ctx, id)
}

func (s *Service) GetRequest(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	return timeoff.ToResponse(request), nil
}

// ListMyRequests returns every request the user created.
func (s *Service) ListMyRequests(ctx context.Context, userID string) ([]timeoff.RequestResponse, error) {
	requests, err := s.requests.GetByRequesterID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return timeoff.ToResponses(requests), nil
}

// ListPendingApprovals returns the open requests still waiting on the user.
func (s *Service) ListPendingApprovals(ctx context.Context, userID string) ([]timeoff.RequestResponse, error) {
	requests, err := s.requests.ListPendingForApprover(ctx, userID)
	if err != nil {
		return nil, err
	}
	return timeoff.ToResponses(requests), nil
}

// ListApprovalsGiven returns the approved requests the user was an approver of.
func (s *Service) ListApprovalsGiven(ctx context.Context, userID string) ([]timeoff.RequestResponse, error) {
	requests, err := s.requests.ListApprovedForApprover(ctx, userID)
	if err != nil {
		return nil, err
	}
	return timeoff.ToResponses(requests), nil
}
