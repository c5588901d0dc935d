package intake_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/lead-intake/internal/intake"
	"github.com/jonesrussell/lead-intake/internal/metrics"
	"github.com/jonesrussell/lead-intake/internal/models"
	"github.com/jonesrussell/lead-intake/internal/notify"
	"github.com/jonesrussell/lead-intake/internal/testhelpers"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, freeformNote, role string) (*models.Extraction, error) {
	args := m.Called(ctx, freeformNote, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Extraction), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) AppendLead(ctx context.Context, record models.LeadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLedger) GetLeadByID(ctx context.Context, leadID string) (models.LeadRecord, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.LeadRecord), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendNotification(ctx context.Context, n notify.Notification) bool {
	args := m.Called(ctx, n)
	return args.Bool(0)
}

func (m *MockNotifier) SendLeadConfirmation(ctx context.Context, c notify.Confirmation) bool {
	args := m.Called(ctx, c)
	return args.Bool(0)
}

func validRequest() *models.LeadIntakeRequest {
	req := &models.LeadIntakeRequest{
		FreeformNote: "We need 500,000 child-resistant jars for a cannabis brand in California, ASAP.",
		Contact: models.ContactInfo{
			Name:    "Jane Doe",
			Company: "Acme Brands",
			Email:   "jane@acme.com",
		},
	}
	req.ApplyDefaults()
	return req
}

func sampleExtraction() *models.Extraction {
	return &models.Extraction{
		ProductTypes:      []string{"child-resistant jars"},
		Markets:           []string{"California"},
		Timeline:          "ASAP",
		BudgetSensitivity: models.BudgetUnknown,
		CompanyType:       models.CompanyUnknown,
		PriorityBand:      models.PriorityHigh,
		Summary:           "Needs 500k CR jars for a California cannabis brand, ASAP.",
	}
}

func newService(e *MockExtractor, l *MockLedger, n *MockNotifier) *intake.Service {
	return intake.NewService(
		e, l, n,
		"sales@ebottles.com",
		[]string{"admin@ebottles.com"},
		metrics.New(),
		testhelpers.NewTestLogger(),
	)
}

func TestProcess_Success(t *testing.T) {
	e := new(MockExtractor)
	l := new(MockLedger)
	n := new(MockNotifier)

	e.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(sampleExtraction(), nil)
	l.On("AppendLead", mock.Anything, mock.MatchedBy(func(r models.LeadRecord) bool {
		return r["company"] == "Acme Brands" &&
			r["product_types"] == "child-resistant jars" &&
			r["markets"] == "California" &&
			r["timeline"] == "ASAP" &&
			r["priority_band"] == "high" &&
			r["status"] == "new"
	})).Return(nil)
	n.On("SendNotification", mock.Anything, mock.MatchedBy(func(notification notify.Notification) bool {
		return notification.Company == "Acme Brands" &&
			len(notification.AdminEmails) == 1
	})).Return(true)
	n.On("SendLeadConfirmation", mock.Anything, mock.MatchedBy(func(c notify.Confirmation) bool {
		return c.ToEmail == "jane@acme.com" && c.SalesEmail == "sales@ebottles.com"
	})).Return(true)

	result, err := newService(e, l, n).Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^LEAD-[0-9A-F]{8}$`, result.LeadID)
	assert.Equal(t, intake.AckMessage, result.Message)
	require.Len(t, result.Steps, 4)
	for _, step := range result.Steps {
		assert.Equal(t, intake.StepOK, step.Status, step.Name)
	}

	e.AssertExpectations(t)
	l.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestProcess_ExtractionFailureFallsBack(t *testing.T) {
	e := new(MockExtractor)
	l := new(MockLedger)
	n := new(MockNotifier)

	e.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("model timeout"))
	l.On("AppendLead", mock.Anything, mock.MatchedBy(func(r models.LeadRecord) bool {
		return r["misc_notes"] == intake.FallbackNotes &&
			r["budget_sensitivity"] == "unknown" &&
			r["priority_band"] == "medium" &&
			strings.HasPrefix(r["ai_summary"], "We need 500,000")
	})).Return(nil)
	n.On("SendNotification", mock.Anything, mock.Anything).Return(true)
	n.On("SendLeadConfirmation", mock.Anything, mock.Anything).Return(true)

	result, err := newService(e, l, n).Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, intake.StepRecovered, result.Steps[0].Status)
	assert.Equal(t, intake.StepExtract, result.Steps[0].Name)

	l.AssertExpectations(t)
}

func TestProcess_LedgerFailureIsFatal(t *testing.T) {
	e := new(MockExtractor)
	l := new(MockLedger)
	n := new(MockNotifier)

	e.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(sampleExtraction(), nil)
	l.On("AppendLead", mock.Anything, mock.Anything).Return(errors.New("sheet not found"))

	result, err := newService(e, l, n).Process(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, result)

	var fatal *intake.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, intake.StepPersist, fatal.Step)

	// Steps 4-5 never execute after a fatal persist failure.
	n.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
	n.AssertNotCalled(t, "SendLeadConfirmation", mock.Anything, mock.Anything)
}

func TestProcess_EmailFailuresAreBestEffort(t *testing.T) {
	e := new(MockExtractor)
	l := new(MockLedger)
	n := new(MockNotifier)

	e.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(sampleExtraction(), nil)
	l.On("AppendLead", mock.Anything, mock.Anything).Return(nil)
	n.On("SendNotification", mock.Anything, mock.Anything).Return(false)
	n.On("SendLeadConfirmation", mock.Anything, mock.Anything).Return(false)

	result, err := newService(e, l, n).Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, intake.StepRecovered, result.Steps[2].Status)
	assert.Equal(t, intake.StepRecovered, result.Steps[3].Status)
	assert.Equal(t, intake.AckMessage, result.Message)
}

func TestProcess_NoDeduplication(t *testing.T) {
	e := new(MockExtractor)
	l := new(MockLedger)
	n := new(MockNotifier)

	e.On("Extract", mock.Anything, mock.Anything, mock.Anything).Return(sampleExtraction(), nil)
	l.On("AppendLead", mock.Anything, mock.Anything).Return(nil)
	n.On("SendNotification", mock.Anything, mock.Anything).Return(true)
	n.On("SendLeadConfirmation", mock.Anything, mock.Anything).Return(true)

	svc := newService(e, l, n)
	first, err := svc.Process(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.LeadID, second.LeadID)
	l.AssertNumberOfCalls(t, "AppendLead", 2)
}

func TestFallbackExtraction(t *testing.T) {
	t.Run("short note kept verbatim", func(t *testing.T) {
		ex := intake.FallbackExtraction("short note")

		assert.Equal(t, "short note", ex.Summary)
		assert.Equal(t, intake.FallbackNotes, ex.MiscNotes)
		assert.Equal(t, []string{intake.FlagAIUnavailable}, ex.ConfidenceFlags)
		assert.Equal(t, models.BudgetUnknown, ex.BudgetSensitivity)
		assert.Equal(t, models.CompanyUnknown, ex.CompanyType)
		assert.Equal(t, models.PriorityMedium, ex.PriorityBand)
		assert.Equal(t, models.TriStateUnknown, ex.SustainabilityInterest)
		assert.Nil(t, ex.EstimatedMonthlyVolume)
	})

	t.Run("long note truncated with ellipsis", func(t *testing.T) {
		note := strings.Repeat("a", 300)
		ex := intake.FallbackExtraction(note)

		assert.Equal(t, strings.Repeat("a", 240)+"…", ex.Summary)
	})

	t.Run("exactly 240 runes kept verbatim", func(t *testing.T) {
		note := strings.Repeat("a", 240)
		ex := intake.FallbackExtraction(note)

		assert.Equal(t, note, ex.Summary)
	})

	t.Run("truncation counts runes, not bytes", func(t *testing.T) {
		note := strings.Repeat("ä", 241)
		ex := intake.FallbackExtraction(note)

		assert.Equal(t, strings.Repeat("ä", 240)+"…", ex.Summary)
	})

	t.Run("validates cleanly", func(t *testing.T) {
		ex := intake.FallbackExtraction("anything")
		require.NoError(t, ex.Validate())
	})
}
