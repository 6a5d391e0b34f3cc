package model

import "fmt"

// 会话状态
const (
	SessionScheduled = "Scheduled"
	SessionCompleted = "Completed"
	SessionCancelled = "Cancelled"
)

// 支付状态
const (
	PaymentPaid     = "Paid"
	PaymentPending  = "Pending"
	PaymentRefunded = "Refunded"
)

// TutoringSession 一次辅导会话，clientId/tutorId 为外键但不校验存在性
// swagger:model TutoringSession
type TutoringSession struct {
	ID                 int      `json:"id"`
	ClientID           int      `json:"clientId"`
	TutorID            int      `json:"tutorId"`
	AIModelIDs         []int    `json:"aiModelIds"` // 会话涉及的AI模型
	SessionDate        string   `json:"sessionDate"` // YYYY-MM-DD
	StartTime          string   `json:"startTime"`   // HH:MM
	DurationMinutes    int      `json:"durationMinutes"`
	Status             string   `json:"status"`
	ClientRating       float64  `json:"clientRating"`
	LearningObjectives string   `json:"learningObjectives"`
	SessionNotes       string   `json:"sessionNotes"`
	Topics             []string `json:"topics"`
	SkillsGained       string   `json:"skillsGained"`
	HomeworkAssigned   string   `json:"homeworkAssigned"`
	SessionCost        float64  `json:"sessionCost"`
	PaymentStatus      string   `json:"paymentStatus"`
	IsRemote           bool     `json:"isRemote"`
	Platform           string   `json:"platform"` // 远程时使用的平台
}

func NewTutoringSession(id, clientID, tutorID int, aiModelIDs []int,
	sessionDate, startTime string, durationMinutes int, isRemote bool, platform string) *TutoringSession {
	return &TutoringSession{
		ID:              id,
		ClientID:        clientID,
		TutorID:         tutorID,
		AIModelIDs:      aiModelIDs,
		SessionDate:     sessionDate,
		StartTime:       startTime,
		DurationMinutes: durationMinutes,
		Status:          SessionScheduled,
		PaymentStatus:   PaymentPending,
		IsRemote:        isRemote,
		Platform:        platform,
	}
}

func (s *TutoringSession) AddAIModel(modelID int) {
	if !s.IncludesAIModel(modelID) {
		s.AIModelIDs = append(s.AIModelIDs, modelID)
	}
}

func (s *TutoringSession) RemoveAIModel(modelID int) {
	for i, id := range s.AIModelIDs {
		if id == modelID {
			s.AIModelIDs = append(s.AIModelIDs[:i], s.AIModelIDs[i+1:]...)
			return
		}
	}
}

func (s *TutoringSession) IncludesAIModel(modelID int) bool {
	for _, id := range s.AIModelIDs {
		if id == modelID {
			return true
		}
	}
	return false
}

func (s *TutoringSession) AddTopic(topic string) {
	s.Topics = append(s.Topics, topic)
}

func (s *TutoringSession) RemoveTopic(topic string) {
	s.Topics = removeString(s.Topics, topic)
}

// Complete 只有排期中的会话能完成，重复完成或完成已取消的会话不生效
func (s *TutoringSession) Complete(rating float64, notes, skillsGained string) bool {
	if s.Status != SessionScheduled {
		return false
	}
	s.Status = SessionCompleted
	s.ClientRating = rating
	s.SessionNotes = notes
	s.SkillsGained = skillsGained
	return true
}

// Cancel 取消原因追加到会话备注
func (s *TutoringSession) Cancel(reason string) {
	s.Status = SessionCancelled
	if s.SessionNotes != "" {
		s.SessionNotes += "; "
	}
	s.SessionNotes += "Cancelled: " + reason
}

// FormattedDuration 返回 "HH:MM" 格式的时长
func (s *TutoringSession) FormattedDuration() string {
	return fmt.Sprintf("%02d:%02d", s.DurationMinutes/60, s.DurationMinutes%60)
}
