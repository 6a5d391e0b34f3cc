package service

import (
	"testing"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAIModelService() *AIModelService {
	return NewAIModelService(repository.NoopStore[*model.AIModel]{}, zap.NewNop())
}

func TestAIModelServiceSeeds(t *testing.T) {
	s := newAIModelService()

	models := s.GetAllModels()
	require.Len(t, models, 3)
	assert.Equal(t, "GPT-4", models[0].Name)
	assert.Equal(t, "DALL-E 3", models[1].Name)
	assert.Equal(t, "Claude", models[2].Name)
}

func TestAddModelAssignsNextID(t *testing.T) {
	s := newAIModelService()

	m := model.NewAIModel(0, "Gemini", "1.5", "Google", "Large Language Model", "2024-02-15", "", 4)
	assert.True(t, s.AddModel(m))
	assert.Equal(t, 4, m.ID)
	assert.Equal(t, "Gemini", s.GetModelByID(4).Name)
}

func TestGetModelsByCategory(t *testing.T) {
	s := newAIModelService()

	llms := s.GetModelsByCategory("Large Language Model")
	require.Len(t, llms, 2)
	assert.Equal(t, "GPT-4", llms[0].Name)
	assert.Equal(t, "Claude", llms[1].Name)

	assert.Empty(t, s.GetModelsByCategory("Speech"))
}

func TestGetModelByName(t *testing.T) {
	s := newAIModelService()

	require.NotNil(t, s.GetModelByName("Claude"))
	assert.Nil(t, s.GetModelByName("Nonexistent"))
}

func TestGetMostPopularModels(t *testing.T) {
	s := newAIModelService()

	top2 := s.GetMostPopularModels(2)
	require.Len(t, top2, 2)
	assert.Equal(t, "GPT-4", top2[0].Name)
	assert.Equal(t, "DALL-E 3", top2[1].Name)

	// 数量超过集合时返回全部
	assert.Len(t, s.GetMostPopularModels(10), 3)
	assert.Empty(t, s.GetMostPopularModels(-1))
}

func TestUpdateModelComplexityNoop(t *testing.T) {
	s := newAIModelService()

	// 越界等级由实体忽略，调用仍算成功
	assert.True(t, s.UpdateModelComplexity(1, 99))
	assert.Equal(t, 4, s.GetModelByID(1).ComplexityLevel)

	assert.True(t, s.UpdateModelComplexity(1, 5))
	assert.Equal(t, 5, s.GetModelByID(1).ComplexityLevel)

	assert.False(t, s.UpdateModelComplexity(999, 3))
}

func TestModelCatalogAnalytics(t *testing.T) {
	s := newAIModelService()

	counts := s.GetModelCategoryCounts()
	assert.Equal(t, 2, counts["Large Language Model"])
	assert.Equal(t, 1, counts["Image Generation"])

	devs := s.GetDeveloperModelCounts()
	assert.Equal(t, 2, devs["OpenAI"])
	assert.Equal(t, 1, devs["Anthropic"])

	assert.InDelta(t, 10.0/3.0, s.GetAverageModelComplexity(), 1e-9)
}

func TestRelatedAndLevelModels(t *testing.T) {
	s := newAIModelService()

	related := s.GetRelatedModels(1)
	require.Len(t, related, 1)
	assert.Equal(t, "Claude", related[0].Name)

	// GPT-4复杂度4，Claude复杂度3是其前置
	prereqs := s.GetPrerequisiteModels(1)
	require.Len(t, prereqs, 1)
	assert.Equal(t, "Claude", prereqs[0].Name)

	next := s.GetNextLevelModels(3)
	require.Len(t, next, 1)
	assert.Equal(t, "GPT-4", next[0].Name)
}

func TestAddCapabilityThroughService(t *testing.T) {
	s := newAIModelService()

	before := len(s.GetModelByID(1).Capabilities)
	assert.True(t, s.AddModelCapability(1, "Translation"))
	assert.Len(t, s.GetModelByID(1).Capabilities, before+1)
}
