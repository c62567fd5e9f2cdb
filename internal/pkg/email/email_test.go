package email

import (
	"testing"

	"github.com/staffhub-hr/timeoff-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) EmailService {
	t.Helper()
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)
	return svc
}

func TestRenderApprovalRequest(t *testing.T) {
	svc := newTestService(t)

	subject, body, err := svc.RenderApprovalRequest("Alice", "paid", "2026-07-01", "2026-07-05")
	require.NoError(t, err)

	assert.Equal(t, "Time-off request from Alice awaits your approval", subject)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "paid")
	assert.Contains(t, body, "2026-07-01")
	assert.Contains(t, body, "2026-07-05")
}

func TestRenderDecision(t *testing.T) {
	svc := newTestService(t)

	subject, body, err := svc.RenderDecision("Alice", "paid", "2026-07-01", "2026-07-05", true)
	require.NoError(t, err)
	assert.Equal(t, "Time-off request 2026-07-01 - 2026-07-05 was approved", subject)
	assert.Contains(t, body, "approved")

	subject, body, err = svc.RenderDecision("Alice", "paid", "2026-07-01", "2026-07-05", false)
	require.NoError(t, err)
	assert.Equal(t, "Time-off request 2026-07-01 - 2026-07-05 was rejected", subject)
	assert.Contains(t, body, "rejected")
}

func TestRenderOutOfOffice(t *testing.T) {
	svc := newTestService(t)

	subject, body, err := svc.RenderOutOfOffice("Alice", "2026-07-01", "2026-07-05")
	require.NoError(t, err)

	assert.Equal(t, "Alice will be out of office", subject)
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "2026-07-01")
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	svc := newTestService(t)

	err := svc.Send("someone@example.com", "subject", "<p>body</p>")
	assert.NoError(t, err)
}
