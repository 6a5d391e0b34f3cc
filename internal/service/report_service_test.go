package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai_tutor_crm_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportService(t *testing.T) *ReportService {
	t.Helper()
	return NewReportService(
		newClientService(),
		newTutorService(),
		newSessionService(),
		newAIModelService(),
		newMaterialService(),
		filepath.Join(t.TempDir(), "reports"),
		zap.NewNop(),
	)
}

func TestGenerateRevenueReport(t *testing.T) {
	s := newReportService(t)

	report, err := s.GenerateRevenueReport("2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Contains(t, report, "Revenue Report (2025-03-01 to 2025-03-31)")
	assert.Contains(t, report, "Completed sessions: 1")
	assert.Contains(t, report, "Total revenue: $127.50")

	_, err = s.GenerateRevenueReport("2025-03-99", "2025-03-31")
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestGenerateClientProgressReport(t *testing.T) {
	s := newReportService(t)

	report, ok := s.GenerateClientProgressReport(1)
	require.True(t, ok)
	assert.Contains(t, report, "Client Progress Report: John Doe")
	assert.Contains(t, report, "TechCorp")

	_, ok = s.GenerateClientProgressReport(999)
	assert.False(t, ok)
}

func TestGenerateAllClientsReport(t *testing.T) {
	s := newReportService(t)

	report := s.GenerateAllClientsReport()
	assert.Contains(t, report, "John Doe")
	assert.Contains(t, report, "Jane Smith")
	assert.Contains(t, report, "Average sessions per client")
}

func TestGenerateTutorPerformanceReport(t *testing.T) {
	s := newReportService(t)

	report, ok := s.GenerateTutorPerformanceReport(1)
	require.True(t, ok)
	assert.Contains(t, report, "Tutor Performance Report: Ming Chen")
	assert.Contains(t, report, "Sessions completed: 42")

	_, ok = s.GenerateTutorPerformanceReport(999)
	assert.False(t, ok)
}

func TestGenerateTutorSpecializationReport(t *testing.T) {
	s := newReportService(t)

	report := s.GenerateTutorSpecializationReport()
	assert.Contains(t, report, "Claude")
	assert.Contains(t, report, "DALL-E 3")
}

func TestGenerateAIModelDemandReport(t *testing.T) {
	s := newReportService(t)

	report := s.GenerateAIModelDemandReport()
	assert.Contains(t, report, "GPT-4")
	assert.Contains(t, report, "Average model complexity")
}

func TestGenerateMonthlyFinancialSummary(t *testing.T) {
	s := newReportService(t)

	report, err := s.GenerateMonthlyFinancialSummary(3, 2025)
	require.NoError(t, err)
	assert.Contains(t, report, "Monthly Financial Summary 2025-03")
	assert.Contains(t, report, "Total revenue: $127.50")
	assert.Contains(t, report, "Unpaid sessions: 1")

	_, err = s.GenerateMonthlyFinancialSummary(13, 2025)
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestSaveReportToFile(t *testing.T) {
	s := newReportService(t)

	path, err := s.SaveReportToFile("report body", "revenue")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".txt"))
	assert.Contains(t, filepath.Base(path), "revenue_")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body", string(data))
}
