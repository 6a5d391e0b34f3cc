package service

import (
	"strconv"
	"strings"
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"
	"ai_tutor_crm_backend/internal/util"

	"go.uber.org/zap"
)

// SessionService 辅导会话集合的属主。clientId/tutorId 为外键但不校验存在性，
// 删除客户也不会级联删除其会话。
type SessionService struct {
	mu       sync.RWMutex
	sessions []*model.TutoringSession
	nextID   int
	store    repository.Store[*model.TutoringSession]
	logger   *zap.Logger
}

func NewSessionService(store repository.Store[*model.TutoringSession], logger *zap.Logger) *SessionService {
	s := &SessionService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadSessions()
	return s
}

func (s *SessionService) loadSessions() {
	sessions, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load sessions", zap.Error(err))
	}

	if len(sessions) == 0 {
		sessions = seedSessions()
	}

	s.sessions = sessions
	for _, sess := range s.sessions {
		if sess.ID >= s.nextID {
			s.nextID = sess.ID + 1
		}
	}

	s.logger.Info("Loaded sessions", zap.Int("count", len(s.sessions)))
}

func seedSessions() []*model.TutoringSession {
	session1 := model.NewTutoringSession(1, 1, 1, []int{1}, "2025-03-10", "14:00", 90, true, "Zoom")
	session1.LearningObjectives = "Prompt engineering basics"
	session1.SessionCost = 127.50
	session1.Complete(4.5, "Covered prompt structure and few-shot examples", "Prompt design")
	session1.PaymentStatus = model.PaymentPaid
	session1.AddTopic("Prompt engineering")
	session1.AddTopic("Few-shot learning")

	session2 := model.NewTutoringSession(2, 2, 2, []int{2}, "2025-03-20", "10:00", 60, true, "Teams")
	session2.LearningObjectives = "Image generation workflows"
	session2.SessionCost = 70.0
	session2.AddTopic("Text-to-image prompting")

	return []*model.TutoringSession{session1, session2}
}

func (s *SessionService) persist() {
	if err := s.store.Save(s.sessions); err != nil {
		s.logger.Error("failed to save sessions", zap.Error(err))
	}
}

// timeToMinutes 调用前必须已通过 HH:MM 校验
func timeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// isTutorAvailableLocked 同一导师同一天的已排期会话不允许时间重叠
func (s *SessionService) isTutorAvailableLocked(tutorID int, date, startTime string, durationMinutes int, excludeID int) bool {
	start := timeToMinutes(startTime)
	end := start + durationMinutes

	for _, sess := range s.sessions {
		if sess.ID == excludeID || sess.TutorID != tutorID || sess.SessionDate != date {
			continue
		}
		if sess.Status != model.SessionScheduled {
			continue
		}
		otherStart := timeToMinutes(sess.StartTime)
		otherEnd := otherStart + sess.DurationMinutes
		if start < otherEnd && otherStart < end {
			return false
		}
	}
	return true
}

// ScheduleSession 日期/时间格式和导师档期校验在分配ID之前
func (s *SessionService) ScheduleSession(session *model.TutoringSession) error {
	if !util.IsValidDate(session.SessionDate) {
		return util.NewValidationError("Invalid session date")
	}
	if !util.IsValidTime(session.StartTime) {
		return util.NewValidationError("Invalid start time")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isTutorAvailableLocked(session.TutorID, session.SessionDate, session.StartTime, session.DurationMinutes, session.ID) {
		return util.NewError(util.KindSession, "Tutor is not available at the requested time")
	}

	if session.ID == 0 {
		session.ID = s.nextID
		s.nextID++
	}
	if session.Status == "" {
		session.Status = model.SessionScheduled
	}
	if session.PaymentStatus == "" {
		session.PaymentStatus = model.PaymentPending
	}

	s.sessions = append(s.sessions, session)
	s.persist()

	s.logger.Info("Scheduled session",
		zap.Int("id", session.ID),
		zap.Int("clientId", session.ClientID),
		zap.Int("tutorId", session.TutorID),
		zap.String("date", session.SessionDate))
	return nil
}

func (s *SessionService) CancelSession(sessionID int, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findByID(sessionID)
	if sess == nil {
		return false
	}

	sess.Cancel(reason)
	s.persist()
	s.logger.Info("Cancelled session", zap.Int("id", sessionID), zap.String("reason", reason))
	return true
}

func (s *SessionService) CompleteSession(sessionID int, clientRating float64, notes, skillsGained string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findByID(sessionID)
	if sess == nil {
		return false
	}

	if !sess.Complete(clientRating, notes, skillsGained) {
		return false
	}
	s.persist()
	s.logger.Info("Completed session", zap.Int("id", sessionID), zap.Float64("rating", clientRating))
	return true
}

func (s *SessionService) UpdateSessionDetails(sessionID int, date, startTime string, durationMinutes int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findByID(sessionID)
	if sess == nil {
		return false, nil
	}

	if !util.IsValidDate(date) {
		return false, util.NewValidationError("Invalid session date")
	}
	if !util.IsValidTime(startTime) {
		return false, util.NewValidationError("Invalid start time")
	}

	sess.SessionDate = date
	sess.StartTime = startTime
	sess.DurationMinutes = durationMinutes
	s.persist()
	return true, nil
}

func (s *SessionService) findByID(sessionID int) *model.TutoringSession {
	for _, sess := range s.sessions {
		if sess.ID == sessionID {
			return sess
		}
	}
	return nil
}

func (s *SessionService) GetSessionByID(sessionID int) *model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(sessionID)
}

func (s *SessionService) GetAllSessions() []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.TutoringSession, len(s.sessions))
	copy(result, s.sessions)
	return result
}

func (s *SessionService) GetClientSessions(clientID int) []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.ClientID == clientID })
}

func (s *SessionService) GetTutorSessions(tutorID int) []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.TutorID == tutorID })
}

func (s *SessionService) GetSessionsByDate(date string) []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.SessionDate == date })
}

func (s *SessionService) GetSessionsByAIModel(aiModelID int) []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.IncludesAIModel(aiModelID) })
}

func (s *SessionService) GetUpcomingSessions() []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.Status == model.SessionScheduled })
}

func (s *SessionService) GetCompletedSessions() []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.Status == model.SessionCompleted })
}

func (s *SessionService) filterLocked(pred func(*model.TutoringSession) bool) []*model.TutoringSession {
	var results []*model.TutoringSession
	for _, sess := range s.sessions {
		if pred(sess) {
			results = append(results, sess)
		}
	}
	return results
}

func (s *SessionService) mutate(sessionID int, fn func(*model.TutoringSession)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.findByID(sessionID)
	if sess == nil {
		return false
	}

	fn(sess)
	s.persist()
	return true
}

func (s *SessionService) AddSessionTopic(sessionID int, topic string) bool {
	return s.mutate(sessionID, func(sess *model.TutoringSession) { sess.AddTopic(topic) })
}

func (s *SessionService) SetSessionObjectives(sessionID int, objectives string) bool {
	return s.mutate(sessionID, func(sess *model.TutoringSession) { sess.LearningObjectives = objectives })
}

func (s *SessionService) AssignSessionHomework(sessionID int, homework string) bool {
	return s.mutate(sessionID, func(sess *model.TutoringSession) { sess.HomeworkAssigned = homework })
}

func (s *SessionService) UpdateSessionPayment(sessionID int, cost float64, status string) bool {
	return s.mutate(sessionID, func(sess *model.TutoringSession) {
		sess.SessionCost = cost
		sess.PaymentStatus = status
	})
}

func (s *SessionService) MarkSessionAsPaid(sessionID int) bool {
	return s.mutate(sessionID, func(sess *model.TutoringSession) { sess.PaymentStatus = model.PaymentPaid })
}

func (s *SessionService) GetUnpaidSessions() []*model.TutoringSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(sess *model.TutoringSession) bool { return sess.PaymentStatus == model.PaymentPending })
}

// GetAverageSessionRating 只统计已完成的会话
func (s *SessionService) GetAverageSessionRating() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	count := 0
	for _, sess := range s.sessions {
		if sess.Status == model.SessionCompleted {
			total += sess.ClientRating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func (s *SessionService) GetPopularSessionTopics() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, sess := range s.sessions {
		for _, topic := range sess.Topics {
			counts[topic]++
		}
	}
	return counts
}

func (s *SessionService) GetSessionsByAIModelCount() map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int]int)
	for _, sess := range s.sessions {
		for _, id := range sess.AIModelIDs {
			counts[id]++
		}
	}
	return counts
}

// GetTotalRevenue 日期区间（含端点）内已完成会话的费用合计，字符串比较依赖 YYYY-MM-DD
func (s *SessionService) GetTotalRevenue(startDate, endDate string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, sess := range s.sessions {
		if sess.Status != model.SessionCompleted {
			continue
		}
		if sess.SessionDate >= startDate && sess.SessionDate <= endDate {
			total += sess.SessionCost
		}
	}
	return total
}

func (s *SessionService) GetAverageSessionDuration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.sessions) == 0 {
		return 0
	}

	total := 0
	for _, sess := range s.sessions {
		total += sess.DurationMinutes
	}
	return float64(total) / float64(len(s.sessions))
}
