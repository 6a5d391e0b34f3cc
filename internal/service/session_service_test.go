package service

import (
	"testing"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"
	"ai_tutor_crm_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionService() *SessionService {
	return NewSessionService(repository.NoopStore[*model.TutoringSession]{}, zap.NewNop())
}

func TestSessionServiceSeeds(t *testing.T) {
	s := newSessionService()

	sessions := s.GetAllSessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, model.SessionCompleted, sessions[0].Status)
	assert.Equal(t, model.PaymentPaid, sessions[0].PaymentStatus)
	assert.Equal(t, model.SessionScheduled, sessions[1].Status)
}

func TestScheduleSessionAssignsNextID(t *testing.T) {
	s := newSessionService()

	sess := model.NewTutoringSession(0, 1, 1, []int{1}, "2025-04-01", "09:00", 60, true, "Zoom")
	require.NoError(t, s.ScheduleSession(sess))
	assert.Equal(t, 3, sess.ID)
	assert.Equal(t, model.SessionScheduled, sess.Status)
	assert.Equal(t, model.PaymentPending, sess.PaymentStatus)
}

func TestScheduleSessionRejectsBadDateAndTime(t *testing.T) {
	s := newSessionService()

	bad := model.NewTutoringSession(0, 1, 1, []int{1}, "2025-13-01", "09:00", 60, true, "Zoom")
	err := s.ScheduleSession(bad)
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
	assert.Len(t, s.GetAllSessions(), 2)

	bad = model.NewTutoringSession(0, 1, 1, []int{1}, "2025-04-01", "25:00", 60, true, "Zoom")
	err = s.ScheduleSession(bad)
	require.Error(t, err)
	assert.True(t, util.IsValidationError(err))
}

func TestScheduleSessionRejectsTutorOverlap(t *testing.T) {
	s := newSessionService()

	// 种子2号会话：导师2，2025-03-20 10:00 起 60 分钟
	overlap := model.NewTutoringSession(0, 3, 2, []int{2}, "2025-03-20", "10:30", 60, true, "Zoom")
	err := s.ScheduleSession(overlap)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindSession))
	assert.Len(t, s.GetAllSessions(), 2)

	// 紧邻的时段不算重叠
	adjacent := model.NewTutoringSession(0, 3, 2, []int{2}, "2025-03-20", "11:00", 60, true, "Zoom")
	assert.NoError(t, s.ScheduleSession(adjacent))

	// 已完成的会话不占用档期
	sameAsCompleted := model.NewTutoringSession(0, 3, 1, []int{1}, "2025-03-10", "14:30", 60, true, "Zoom")
	assert.NoError(t, s.ScheduleSession(sameAsCompleted))
}

func TestCancelAndCompleteSession(t *testing.T) {
	s := newSessionService()

	require.True(t, s.CancelSession(2, "client sick"))
	sess := s.GetSessionByID(2)
	assert.Equal(t, model.SessionCancelled, sess.Status)
	assert.Contains(t, sess.SessionNotes, "client sick")

	assert.False(t, s.CancelSession(999, "no such"))

	fresh := model.NewTutoringSession(0, 2, 2, []int{2}, "2025-03-22", "10:00", 60, true, "Teams")
	require.NoError(t, s.ScheduleSession(fresh))
	require.True(t, s.CompleteSession(fresh.ID, 5.0, "Great progress", "Inpainting"))
	assert.Equal(t, model.SessionCompleted, s.GetSessionByID(fresh.ID).Status)
	assert.Equal(t, 5.0, s.GetSessionByID(fresh.ID).ClientRating)

	// 重复完成不生效，评分不被覆盖
	assert.False(t, s.CompleteSession(fresh.ID, 1.0, "again", ""))
	assert.Equal(t, 5.0, s.GetSessionByID(fresh.ID).ClientRating)

	// 已取消的会话不能完成
	assert.False(t, s.CompleteSession(2, 5.0, "", ""))
	assert.Equal(t, model.SessionCancelled, s.GetSessionByID(2).Status)

	assert.False(t, s.CompleteSession(999, 5.0, "", ""))
}

func TestUpdateSessionDetails(t *testing.T) {
	s := newSessionService()

	ok, err := s.UpdateSessionDetails(2, "2025-03-21", "11:00", 45)
	require.NoError(t, err)
	require.True(t, ok)
	sess := s.GetSessionByID(2)
	assert.Equal(t, "2025-03-21", sess.SessionDate)
	assert.Equal(t, 45, sess.DurationMinutes)

	ok, err = s.UpdateSessionDetails(2, "2025-02-30", "11:00", 45)
	assert.False(t, ok)
	assert.True(t, util.IsValidationError(err))

	ok, err = s.UpdateSessionDetails(999, "2025-03-21", "11:00", 45)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestSessionQueries(t *testing.T) {
	s := newSessionService()

	assert.Len(t, s.GetClientSessions(1), 1)
	assert.Empty(t, s.GetClientSessions(999))
	assert.Len(t, s.GetTutorSessions(2), 1)
	assert.Len(t, s.GetSessionsByDate("2025-03-10"), 1)
	assert.Len(t, s.GetSessionsByAIModel(1), 1)
	assert.Len(t, s.GetUpcomingSessions(), 1)
	assert.Len(t, s.GetCompletedSessions(), 1)
}

func TestSessionTopicAndNotes(t *testing.T) {
	s := newSessionService()

	require.True(t, s.AddSessionTopic(2, "Negative prompts"))
	assert.Contains(t, s.GetSessionByID(2).Topics, "Negative prompts")
	assert.False(t, s.AddSessionTopic(999, "Negative prompts"))

	require.True(t, s.SetSessionObjectives(2, "Master img2img"))
	assert.Equal(t, "Master img2img", s.GetSessionByID(2).LearningObjectives)

	require.True(t, s.AssignSessionHomework(2, "Generate 10 variations"))
	assert.Equal(t, "Generate 10 variations", s.GetSessionByID(2).HomeworkAssigned)
}

func TestSessionPayment(t *testing.T) {
	s := newSessionService()

	unpaid := s.GetUnpaidSessions()
	require.Len(t, unpaid, 1)
	assert.Equal(t, 2, unpaid[0].ID)

	require.True(t, s.UpdateSessionPayment(2, 75.0, model.PaymentPending))
	assert.Equal(t, 75.0, s.GetSessionByID(2).SessionCost)

	require.True(t, s.MarkSessionAsPaid(2))
	assert.Equal(t, model.PaymentPaid, s.GetSessionByID(2).PaymentStatus)
	assert.Empty(t, s.GetUnpaidSessions())
}

func TestSessionAnalytics(t *testing.T) {
	s := newSessionService()

	// 只有已完成会话计入平均评分
	assert.InDelta(t, 4.5, s.GetAverageSessionRating(), 1e-9)

	topics := s.GetPopularSessionTopics()
	assert.Equal(t, 1, topics["Prompt engineering"])
	assert.Equal(t, 1, topics["Text-to-image prompting"])

	byModel := s.GetSessionsByAIModelCount()
	assert.Equal(t, 1, byModel[1])
	assert.Equal(t, 1, byModel[2])

	assert.InDelta(t, 75.0, s.GetAverageSessionDuration(), 1e-9)
}

func TestGetTotalRevenue(t *testing.T) {
	s := newSessionService()

	// 2号会话尚未完成，不计入营收
	assert.InDelta(t, 127.50, s.GetTotalRevenue("2025-03-01", "2025-03-31"), 1e-9)
	assert.Zero(t, s.GetTotalRevenue("2025-04-01", "2025-04-30"))

	require.True(t, s.CompleteSession(2, 4.0, "", ""))
	assert.InDelta(t, 197.50, s.GetTotalRevenue("2025-03-01", "2025-03-31"), 1e-9)
}
