package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talenthub-backend/models"
)

func TestRenderTemplate(t *testing.T) {
	out, err := renderTemplate("t", "Hello {{.FirstName}} {{.LastName}}", &models.Candidate{
		FirstName: "Priya", LastName: "Sharma",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Priya Sharma", out)

	_, err = renderTemplate("t", "{{.Broken", nil)
	assert.Error(t, err)
}

func TestDeliver_LogsFailureWithoutSMTP(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.AutoMigrate(&models.EmailTemplate{}, &models.EmailLog{}))

	svc := NewNotificationService(db, testConfig())
	tpl := &models.EmailTemplate{
		Name:    "candidate_created",
		Subject: "New candidate: {{.FirstName}}",
		Body:    "{{.FirstName}} was added.",
		Enabled: true,
	}

	svc.deliver(tpl, "recruiter@example.com", &models.Candidate{FirstName: "Arun"})

	logs, total, err := svc.GetLogs(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "failed", logs[0].Status)
	assert.Equal(t, "New candidate: Arun", logs[0].Subject)
	assert.Contains(t, logs[0].Error, "SMTP_HOST")
}

func TestSend_SkipsEmptyRecipient(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.AutoMigrate(&models.EmailTemplate{}, &models.EmailLog{}))

	svc := NewNotificationService(db, testConfig())
	svc.Send("candidate_created", "", nil)

	_, total, err := svc.GetLogs(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
