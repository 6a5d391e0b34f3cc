package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientBudgetClamp(t *testing.T) {
	c := NewClient(1, "John", "Doe", "john@example.com", "555-123-4567", "TechCorp", "CTO")
	c.Budget = 100

	c.DeductFromBudget(40)
	assert.Equal(t, 60.0, c.Budget)

	// 超额扣减直接归零，不出现负数
	c.DeductFromBudget(500)
	assert.Equal(t, 0.0, c.Budget)

	c.AddToBudget(250)
	assert.Equal(t, 250.0, c.Budget)
}

func TestClientInterestDedup(t *testing.T) {
	c := NewClient(1, "John", "Doe", "john@example.com", "555-123-4567", "", "")

	c.AddModelOfInterest("GPT-4")
	c.AddModelOfInterest("GPT-4")
	c.AddModelOfInterest("Claude")
	assert.Equal(t, []string{"GPT-4", "Claude"}, c.ModelsOfInterest)

	assert.True(t, c.IsInterestedIn("GPT-4"))
	c.RemoveModelOfInterest("GPT-4")
	assert.False(t, c.IsInterestedIn("GPT-4"))
}

func TestClientProficiencyRange(t *testing.T) {
	c := NewClient(1, "John", "Doe", "john@example.com", "555-123-4567", "", "")

	c.SetModelProficiency("GPT-4", 3)
	assert.Equal(t, 3, c.ModelProficiency["GPT-4"])

	// 越界等级不落库
	c.SetModelProficiency("GPT-4", 0)
	c.SetModelProficiency("GPT-4", 6)
	assert.Equal(t, 3, c.ModelProficiency["GPT-4"])
}

func TestAIModelComplexitySilentNoop(t *testing.T) {
	m := NewAIModel(1, "GPT-4", "4.0", "OpenAI", "Large Language Model", "2023-03-14", "", 4)

	m.SetComplexityLevel(9)
	assert.Equal(t, 4, m.ComplexityLevel)

	m.SetComplexityLevel(2)
	assert.Equal(t, 2, m.ComplexityLevel)
}

func TestAIModelCapabilityNoDedup(t *testing.T) {
	m := NewAIModel(1, "GPT-4", "4.0", "OpenAI", "Large Language Model", "2023-03-14", "", 4)

	m.AddCapability("Text generation")
	m.AddCapability("Text generation")
	assert.Len(t, m.Capabilities, 2)
}

func TestAIModelTutorsAvailableFloor(t *testing.T) {
	m := NewAIModel(1, "GPT-4", "4.0", "OpenAI", "Large Language Model", "2023-03-14", "", 4)

	m.DecrementTutorsAvailable()
	assert.Equal(t, 0, m.TutorsAvailable)

	m.IncrementTutorsAvailable()
	m.IncrementTutorsAvailable()
	m.DecrementTutorsAvailable()
	assert.Equal(t, 1, m.TutorsAvailable)
}

func TestTutorRatingRunningMean(t *testing.T) {
	tutor := NewTutor(1, "ming", "pw", "Ming", "Chen", "ming@example.com", "555-000-0000",
		[]string{"GPT-4"}, nil, "PhD", 5, 80)
	tutor.SessionsCompleted = 1
	tutor.AverageRating = 4.0

	tutor.UpdateRating(5.0)
	assert.Equal(t, 2, tutor.SessionsCompleted)
	assert.InDelta(t, 4.5, tutor.AverageRating, 1e-9)
}

func TestTutorModelExperienceRange(t *testing.T) {
	tutor := NewTutor(1, "ming", "pw", "Ming", "Chen", "ming@example.com", "555-000-0000",
		nil, nil, "PhD", 5, 80)

	tutor.SetModelExperience("Claude", 4)
	assert.Equal(t, 4, tutor.ModelExperience["Claude"])

	tutor.SetModelExperience("Claude", 7)
	assert.Equal(t, 4, tutor.ModelExperience["Claude"])
}

func TestSessionLifecycle(t *testing.T) {
	s := NewTutoringSession(1, 1, 1, []int{1}, "2025-03-10", "14:00", 90, true, "Zoom")
	assert.Equal(t, SessionScheduled, s.Status)
	assert.Equal(t, PaymentPending, s.PaymentStatus)
	assert.Equal(t, "01:30", s.FormattedDuration())

	assert.True(t, s.Complete(4.5, "good progress", "prompt basics"))
	assert.Equal(t, SessionCompleted, s.Status)
	assert.Equal(t, 4.5, s.ClientRating)

	// 非排期状态的会话不能完成
	assert.False(t, s.Complete(1.0, "again", ""))
	assert.Equal(t, 4.5, s.ClientRating)

	s2 := NewTutoringSession(2, 1, 1, nil, "2025-03-12", "10:00", 60, false, "")
	s2.Cancel("client sick")
	assert.Equal(t, SessionCancelled, s2.Status)
	assert.Contains(t, s2.SessionNotes, "Cancelled: client sick")
	assert.False(t, s2.Complete(5.0, "", ""))
}

func TestSessionAIModelDedup(t *testing.T) {
	s := NewTutoringSession(1, 1, 1, []int{1}, "2025-03-10", "14:00", 90, true, "Zoom")

	s.AddAIModel(1)
	s.AddAIModel(2)
	assert.Equal(t, []int{1, 2}, s.AIModelIDs)
}

func TestMaterialDifficulty(t *testing.T) {
	m := NewLearningMaterial(1, "Prompting 101", "", "Document", "PDF", "Ada")

	m.SetDifficultyLevel(2)
	assert.Equal(t, "Elementary", m.DifficultyDescription())

	m.SetDifficultyLevel(0)
	assert.Equal(t, 2, m.DifficultyLevel)

	m.DifficultyLevel = 0
	assert.Equal(t, "Unknown", m.DifficultyDescription())
}

func TestMaterialRatingRunningMean(t *testing.T) {
	m := NewLearningMaterial(1, "Prompting 101", "", "Document", "PDF", "Ada")

	m.UpdateRating(4.0)
	m.UpdateRating(5.0)
	assert.Equal(t, 2, m.RatingCount)
	assert.InDelta(t, 4.5, m.Rating, 1e-9)
}

func TestMaterialIsDigital(t *testing.T) {
	m := NewLearningMaterial(1, "Prompting 101", "", "Document", "PDF", "Ada")
	assert.False(t, m.IsDigital())

	m.URL = "https://example.com/a.pdf"
	assert.True(t, m.IsDigital())
}

func TestUserFullNameAndRoles(t *testing.T) {
	admin := &Admin{UserBase: UserBase{ID: 1, Username: "admin", FirstName: "Alex", LastName: "Morgan"}}
	assert.Equal(t, "Alex Morgan", admin.FullName())
	assert.Equal(t, RoleAdmin, admin.Role())

	tutor := NewTutor(2, "tutor", "pw", "Ming", "Chen", "", "", nil, nil, "PhD", 5, 75)
	assert.Equal(t, RoleTutor, tutor.Role())
}
