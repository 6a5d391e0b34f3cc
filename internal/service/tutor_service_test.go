package service

import (
	"testing"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTutorService() *TutorService {
	return NewTutorService(repository.NoopStore[*model.Tutor]{}, zap.NewNop())
}

func TestTutorServiceSeeds(t *testing.T) {
	s := newTutorService()

	tutors := s.GetAllTutors()
	require.Len(t, tutors, 2)
	assert.Equal(t, "Ming Chen", tutors[0].FullName())
	assert.Equal(t, "Sarah Lee", tutors[1].FullName())
}

func TestAddTutorAssignsNextID(t *testing.T) {
	s := newTutorService()

	tutor := model.NewTutor(0, "pnair", "pw", "Priya", "Nair", "priya@example.com", "555-7777",
		[]string{"Whisper"}, []string{"Speech Recognition"}, "MSc", 3, 65)
	require.True(t, s.AddTutor(tutor))
	assert.Equal(t, 3, tutor.ID)
	assert.Equal(t, tutor, s.GetTutorByID(3))
}

func TestRemoveTutor(t *testing.T) {
	s := newTutorService()

	assert.True(t, s.RemoveTutor(2))
	assert.Nil(t, s.GetTutorByID(2))
	assert.False(t, s.RemoveTutor(2))
}

func TestTutorSpecializations(t *testing.T) {
	s := newTutorService()

	require.True(t, s.AddTutorSpecialization(1, "Gemini"))
	assert.Contains(t, s.GetTutorByID(1).Specializations, "Gemini")

	// 专长列表允许重复条目
	require.True(t, s.AddTutorSpecialization(1, "Gemini"))
	count := 0
	for _, spec := range s.GetTutorByID(1).Specializations {
		if spec == "Gemini" {
			count++
		}
	}
	assert.Equal(t, 2, count)

	// 删除只摘掉第一处出现
	require.True(t, s.RemoveTutorSpecialization(1, "Gemini"))
	assert.Contains(t, s.GetTutorByID(1).Specializations, "Gemini")
	require.True(t, s.RemoveTutorSpecialization(1, "Gemini"))
	assert.NotContains(t, s.GetTutorByID(1).Specializations, "Gemini")

	assert.False(t, s.AddTutorSpecialization(999, "Gemini"))
}

func TestTutorModelExperience(t *testing.T) {
	s := newTutorService()

	require.True(t, s.UpdateTutorModelExperience(2, "Stable Diffusion", 4))
	assert.Equal(t, 4, s.GetTutorModelExperience(2)["Stable Diffusion"])

	// 越界等级保留旧值
	require.True(t, s.UpdateTutorModelExperience(2, "Stable Diffusion", 9))
	assert.Equal(t, 4, s.GetTutorModelExperience(2)["Stable Diffusion"])

	assert.Empty(t, s.GetTutorModelExperience(999))
}

func TestTutorFilters(t *testing.T) {
	s := newTutorService()

	bySpec := s.GetTutorsBySpecialization("Claude")
	require.Len(t, bySpec, 1)
	assert.Equal(t, "Ming Chen", bySpec[0].FullName())

	byDomain := s.GetTutorsByDomain("Computer Vision")
	require.Len(t, byDomain, 1)
	assert.Equal(t, "Sarah Lee", byDomain[0].FullName())

	assert.Len(t, s.GetTutorsByExperience(4), 2)
	assert.Len(t, s.GetTutorsByExperience(5), 1)
	assert.Empty(t, s.GetTutorsByExperience(20))
}

func TestUpdateTutorRatingRunningMean(t *testing.T) {
	s := newTutorService()

	// 42次完成、均分4.7，新评分5.0并入平均
	require.True(t, s.UpdateTutorRating(1, 5.0))
	assert.InDelta(t, (4.7*42+5.0)/43, s.GetTutorAverageRating(1), 1e-9)
	assert.Equal(t, 42, s.GetTutorCompletedSessions(1))

	assert.False(t, s.UpdateTutorRating(999, 5.0))
	assert.Zero(t, s.GetTutorAverageRating(999))
}

func TestIncrementTutorSessions(t *testing.T) {
	s := newTutorService()

	require.True(t, s.IncrementTutorSessions(2))
	assert.Equal(t, 19, s.GetTutorCompletedSessions(2))
	assert.Zero(t, s.GetTutorCompletedSessions(999))
}

func TestUpdateTutorRate(t *testing.T) {
	s := newTutorService()

	require.True(t, s.UpdateTutorRate(2, 80))
	assert.Equal(t, 80.0, s.GetTutorRate(2))
	assert.Zero(t, s.GetTutorRate(999))
}

func TestPopularSpecializations(t *testing.T) {
	s := newTutorService()

	require.True(t, s.AddTutorSpecialization(2, "GPT-4"))

	counts := s.GetPopularSpecializations()
	assert.Equal(t, 2, counts["GPT-4"])
	assert.Equal(t, 1, counts["Claude"])
	assert.Equal(t, 1, counts["DALL-E 3"])
}

func TestTopRatedAndMostExperienced(t *testing.T) {
	s := newTutorService()

	top := s.GetTopRatedTutors(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Ming Chen", top[0].FullName())

	assert.Len(t, s.GetTopRatedTutors(10), 2)

	exp := s.GetMostExperiencedTutors(2)
	require.Len(t, exp, 2)
	assert.Equal(t, "Ming Chen", exp[0].FullName())
	assert.Equal(t, "Sarah Lee", exp[1].FullName())

	assert.Empty(t, s.GetTopRatedTutors(-1))
	assert.Empty(t, s.GetMostExperiencedTutors(-3))
}

func TestFindMatchingTutorsForClient(t *testing.T) {
	s := newTutorService()

	matches := s.FindMatchingTutorsForClient(1, []string{"Claude", "DALL-E 3"})
	require.Len(t, matches, 2)
	assert.Equal(t, "Ming Chen", matches[0].FullName())
	assert.Equal(t, "Sarah Lee", matches[1].FullName())

	assert.Empty(t, s.FindMatchingTutorsForClient(1, []string{"Midjourney"}))
}

func TestGetBestTutorMatch(t *testing.T) {
	s := newTutorService()

	require.True(t, s.AddTutorSpecialization(2, "GPT-4"))

	best := s.GetBestTutorMatch(1, "GPT-4")
	require.NotNil(t, best)
	assert.Equal(t, "Ming Chen", best.FullName())

	assert.Nil(t, s.GetBestTutorMatch(1, "Midjourney"))
}
