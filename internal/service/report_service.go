package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ai_tutor_crm_backend/internal/util"

	"go.uber.org/zap"
)

// ReportService 跨服务的只读汇总，生成纯文本报表。
// 只消费其他服务的查询接口，从不直接改动任何集合。
type ReportService struct {
	clients    *ClientService
	tutors     *TutorService
	sessions   *SessionService
	aiModels   *AIModelService
	materials  *LearningMaterialService
	reportsDir string
	logger     *zap.Logger
}

func NewReportService(clients *ClientService, tutors *TutorService, sessions *SessionService,
	aiModels *AIModelService, materials *LearningMaterialService, reportsDir string, logger *zap.Logger) *ReportService {
	return &ReportService{
		clients:    clients,
		tutors:     tutors,
		sessions:   sessions,
		aiModels:   aiModels,
		materials:  materials,
		reportsDir: reportsDir,
		logger:     logger,
	}
}

func (s *ReportService) currentDate() string {
	return time.Now().Format("2006-01-02")
}

// GenerateRevenueReport 指定日期区间内已完成会话的收入汇总
func (s *ReportService) GenerateRevenueReport(startDate, endDate string) (string, error) {
	if !util.IsValidDate(startDate) || !util.IsValidDate(endDate) {
		return "", util.NewValidationError("Invalid report date range")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Revenue Report (%s to %s)\n", startDate, endDate)
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())

	completed := 0
	for _, sess := range s.sessions.GetCompletedSessions() {
		if sess.SessionDate >= startDate && sess.SessionDate <= endDate {
			fmt.Fprintf(&b, "  Session %d  %s  client=%d tutor=%d  $%.2f (%s)\n",
				sess.ID, sess.SessionDate, sess.ClientID, sess.TutorID, sess.SessionCost, sess.PaymentStatus)
			completed++
		}
	}

	fmt.Fprintf(&b, "\nCompleted sessions: %d\n", completed)
	fmt.Fprintf(&b, "Total revenue: $%.2f\n", s.sessions.GetTotalRevenue(startDate, endDate))
	return b.String(), nil
}

// GenerateClientProgressReport 单个客户的学习进度
func (s *ReportService) GenerateClientProgressReport(clientID int) (string, bool) {
	client := s.clients.GetClientByID(clientID)
	if client == nil {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Client Progress Report: %s\n", client.FullName())
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())
	fmt.Fprintf(&b, "Company: %s (%s)\n", client.Company, client.Position)
	fmt.Fprintf(&b, "Registered: %s\n", client.RegistrationDate)
	fmt.Fprintf(&b, "Sessions completed: %d (last: %s)\n", client.SessionsCompleted, client.LastSessionDate)
	fmt.Fprintf(&b, "Remaining budget: $%.2f\n\n", client.Budget)

	fmt.Fprintf(&b, "Models of interest: %s\n", strings.Join(client.ModelsOfInterest, ", "))

	// 输出顺序与底层map无关
	models := make([]string, 0, len(client.ModelProficiency))
	for m := range client.ModelProficiency {
		models = append(models, m)
	}
	sort.Strings(models)
	fmt.Fprintf(&b, "Proficiency:\n")
	for _, m := range models {
		fmt.Fprintf(&b, "  %-20s level %d/5\n", m, client.ModelProficiency[m])
	}

	fmt.Fprintf(&b, "\nSessions:\n")
	for _, sess := range s.sessions.GetClientSessions(clientID) {
		fmt.Fprintf(&b, "  %s  %s  %s\n", sess.SessionDate, sess.FormattedDuration(), sess.Status)
	}

	return b.String(), true
}

// GenerateAllClientsReport 全部客户的概览
func (s *ReportService) GenerateAllClientsReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "All Clients Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())

	for _, c := range s.clients.GetAllClients() {
		fmt.Fprintf(&b, "  [%d] %-24s %-20s sessions=%d budget=$%.2f\n",
			c.ID, c.FullName(), c.Company, c.SessionsCompleted, c.Budget)
	}

	fmt.Fprintf(&b, "\nAverage sessions per client: %.2f\n", s.clients.GetAverageClientSessions())
	return b.String()
}

// GenerateTutorPerformanceReport 单个导师的表现
func (s *ReportService) GenerateTutorPerformanceReport(tutorID int) (string, bool) {
	tutor := s.tutors.GetTutorByID(tutorID)
	if tutor == nil {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tutor Performance Report: %s\n", tutor.FullName())
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())
	fmt.Fprintf(&b, "Qualification: %s (%d years)\n", tutor.Qualification, tutor.ExperienceYears)
	fmt.Fprintf(&b, "Hourly rate: $%.2f\n", tutor.HourlyRate)
	fmt.Fprintf(&b, "Sessions completed: %d\n", tutor.SessionsCompleted)
	fmt.Fprintf(&b, "Average rating: %.2f/5\n", tutor.AverageRating)
	fmt.Fprintf(&b, "Specializations: %s\n", strings.Join(tutor.Specializations, ", "))
	return b.String(), true
}

// GenerateTutorSpecializationReport 按专长统计导师供给
func (s *ReportService) GenerateTutorSpecializationReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tutor Specialization Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())

	counts := s.tutors.GetPopularSpecializations()
	specs := make([]string, 0, len(counts))
	for spec := range counts {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		fmt.Fprintf(&b, "  %-32s %d tutor(s)\n", spec, counts[spec])
	}
	return b.String()
}

// GenerateAIModelDemandReport 模型目录与客户需求的对照
func (s *ReportService) GenerateAIModelDemandReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "AI Model Demand Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())

	interest := s.clients.GetPopularAIModels()
	for _, m := range s.aiModels.GetMostPopularModels(len(s.aiModels.GetAllModels())) {
		fmt.Fprintf(&b, "  rank %d  %-16s %-24s tutors=%d interested clients=%d\n",
			m.PopularityRank, m.Name, m.Category, m.TutorsAvailable, interest[m.Name])
	}

	fmt.Fprintf(&b, "\nAverage model complexity: %.2f\n", s.aiModels.GetAverageModelComplexity())
	return b.String()
}

// GenerateMonthlyFinancialSummary 指定月份的收入汇总
func (s *ReportService) GenerateMonthlyFinancialSummary(month, year int) (string, error) {
	if month < 1 || month > 12 {
		return "", util.NewValidationError("Invalid month")
	}

	start := fmt.Sprintf("%04d-%02d-01", year, month)
	end := fmt.Sprintf("%04d-%02d-31", year, month)

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly Financial Summary %04d-%02d\n", year, month)
	fmt.Fprintf(&b, "Generated: %s\n\n", s.currentDate())
	fmt.Fprintf(&b, "Total revenue: $%.2f\n", s.sessions.GetTotalRevenue(start, end))
	fmt.Fprintf(&b, "Unpaid sessions: %d\n", len(s.sessions.GetUnpaidSessions()))
	return b.String(), nil
}

// SaveReportToFile 报表落盘，文件名带报表类型和日期
func (s *ReportService) SaveReportToFile(content, reportType string) (string, error) {
	if err := os.MkdirAll(s.reportsDir, 0755); err != nil {
		return "", util.NewFileError("could not create reports directory: " + err.Error())
	}

	filename := fmt.Sprintf("%s_%s.txt", reportType, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.reportsDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", util.NewFileError("could not write report: " + err.Error())
	}

	s.logger.Info("Saved report", zap.String("type", reportType), zap.String("path", path))
	return path, nil
}
