package service

import (
	"testing"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMaterialService() *LearningMaterialService {
	return NewLearningMaterialService(repository.NoopStore[*model.LearningMaterial]{}, zap.NewNop())
}

func TestMaterialServiceSeeds(t *testing.T) {
	s := newMaterialService()

	materials := s.GetAllMaterials()
	require.Len(t, materials, 3)
	assert.Equal(t, "Prompt Engineering Fundamentals", materials[0].Title)
	assert.Equal(t, "Image Generation Workshop", materials[1].Title)
	assert.Equal(t, "Advanced Context Window Techniques", materials[2].Title)
}

func TestAddMaterialAssignsNextID(t *testing.T) {
	s := newMaterialService()

	m := model.NewLearningMaterial(0, "Fine-tuning Basics", "Intro to fine-tuning", "Document", "PDF", "Priya Nair")
	require.True(t, s.AddMaterial(m))
	assert.Equal(t, 4, m.ID)
	assert.Equal(t, m, s.GetMaterialByID(4))
}

func TestRemoveMaterial(t *testing.T) {
	s := newMaterialService()

	assert.True(t, s.RemoveMaterial(2))
	assert.Nil(t, s.GetMaterialByID(2))
	assert.False(t, s.RemoveMaterial(2))
	assert.Len(t, s.GetAllMaterials(), 2)
}

func TestUpdateMaterialDetails(t *testing.T) {
	s := newMaterialService()

	require.True(t, s.UpdateMaterial(1, "Prompting 101", "Revised intro", "Document", "EPUB", "Ming Chen"))
	m := s.GetMaterialByID(1)
	assert.Equal(t, "Prompting 101", m.Title)
	assert.Equal(t, "EPUB", m.Format)

	assert.False(t, s.UpdateMaterial(999, "x", "x", "x", "x", "x"))
}

func TestMaterialFilters(t *testing.T) {
	s := newMaterialService()

	assert.Len(t, s.GetMaterialsByType("Document"), 1)
	assert.Len(t, s.GetMaterialsByFormat("MP4"), 1)
	assert.Len(t, s.GetMaterialsByAuthor("Ming Chen"), 2)
	assert.Len(t, s.GetMaterialsByDifficulty(4), 1)
	assert.Empty(t, s.GetMaterialsByDifficulty(5))
}

func TestSearchMaterials(t *testing.T) {
	s := newMaterialService()

	byTitle := s.SearchMaterialsByTitle("WORKSHOP")
	require.Len(t, byTitle, 1)
	assert.Equal(t, 2, byTitle[0].ID)

	byTag := s.SearchMaterialsByTag("prompting")
	require.Len(t, byTag, 2)
	assert.Empty(t, s.SearchMaterialsByTag("missing-tag"))
}

func TestMaterialAIModelLinks(t *testing.T) {
	s := newMaterialService()

	require.True(t, s.AddMaterialAIModel(2, 3))
	assert.Len(t, s.GetMaterialsForAIModel(3), 3)

	require.True(t, s.RemoveMaterialAIModel(2, 3))
	assert.Len(t, s.GetMaterialsForAIModel(3), 2)

	assert.False(t, s.AddMaterialAIModel(999, 1))
}

func TestMaterialTags(t *testing.T) {
	s := newMaterialService()

	require.True(t, s.AddMaterialTag(2, "video"))
	assert.Contains(t, s.GetMaterialByID(2).Tags, "video")

	// 同一资料内标签去重
	require.True(t, s.AddMaterialTag(2, "video"))
	count := 0
	for _, tag := range s.GetMaterialByID(2).Tags {
		if tag == "video" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	require.True(t, s.RemoveMaterialTag(2, "video"))
	assert.NotContains(t, s.GetMaterialByID(2).Tags, "video")
}

func TestGetAllTagsDeduplicated(t *testing.T) {
	s := newMaterialService()

	// "prompting" 出现在两份资料里，只出现一次，且保持首次出现顺序
	tags := s.GetAllTags()
	assert.Equal(t, []string{"prompting", "beginner", "image-generation", "workshop", "advanced"}, tags)
}

func TestMaterialRatingAndUsage(t *testing.T) {
	s := newMaterialService()

	// 种子评分 4.6 来自一次评分，第二次评分并入平均
	require.True(t, s.UpdateMaterialRating(1, 4.0))
	assert.InDelta(t, 4.3, s.GetMaterialRating(1), 1e-9)

	require.True(t, s.IncrementMaterialUsage(1))
	assert.Equal(t, 13, s.GetMaterialUsageCount(1))

	assert.Zero(t, s.GetMaterialRating(999))
	assert.Zero(t, s.GetMaterialUsageCount(999))
}

func TestMostUsedAndTopRated(t *testing.T) {
	s := newMaterialService()

	mostUsed := s.GetMostUsedMaterials(2)
	require.Len(t, mostUsed, 2)
	assert.Equal(t, 1, mostUsed[0].ID)
	assert.Equal(t, 2, mostUsed[1].ID)

	topRated := s.GetTopRatedMaterials(10)
	require.Len(t, topRated, 3)
	assert.Equal(t, 3, topRated[0].ID)
	assert.Equal(t, 1, topRated[1].ID)

	assert.Empty(t, s.GetMostUsedMaterials(-1))
	assert.Empty(t, s.GetTopRatedMaterials(-1))
}

func TestMaterialTypeDistribution(t *testing.T) {
	s := newMaterialService()

	dist := s.GetMaterialTypeDistribution()
	assert.Equal(t, 1, dist["Document"])
	assert.Equal(t, 1, dist["Video"])
	assert.Equal(t, 1, dist["Exercise"])
}

func TestRecommendedMaterials(t *testing.T) {
	s := newMaterialService()

	recs := s.GetRecommendedMaterials(1)
	require.Len(t, recs, 3)
	assert.Equal(t, 3, recs[0].ID)
}

func TestRelatedMaterials(t *testing.T) {
	s := newMaterialService()

	// 资料1与资料3共享模型1和标签 prompting，与资料2无交集
	related := s.GetRelatedMaterials(1)
	require.Len(t, related, 1)
	assert.Equal(t, 3, related[0].ID)

	assert.Nil(t, s.GetRelatedMaterials(999))
}

func TestLearningPathMaterials(t *testing.T) {
	s := newMaterialService()

	// 模型1下难度不低于客户水平2的资料，按难度升序
	path := s.GetLearningPathMaterials(1, 2)
	require.Len(t, path, 1)
	assert.Equal(t, 3, path[0].ID)

	path = s.GetLearningPathMaterials(1, 1)
	require.Len(t, path, 2)
	assert.Equal(t, 1, path[0].ID)
	assert.Equal(t, 3, path[1].ID)

	assert.Empty(t, s.GetLearningPathMaterials(1, 5))
}

func TestUpdateMaterialLocationAndTime(t *testing.T) {
	s := newMaterialService()

	require.True(t, s.UpdateMaterialLocation(1, "https://cdn.example.com/p.pdf", "/uploads/p.pdf"))
	assert.Equal(t, "/uploads/p.pdf", s.GetMaterialByID(1).LocalPath)

	require.True(t, s.UpdateMaterialTime(1, 60))
	assert.Equal(t, 60, s.GetMaterialByID(1).EstimatedTimeMinutes)

	require.True(t, s.UpdateMaterialDifficulty(1, 3))
	assert.Equal(t, 3, s.GetMaterialByID(1).DifficultyLevel)

	// 越界难度保持原值
	require.True(t, s.UpdateMaterialDifficulty(1, 6))
	assert.Equal(t, 3, s.GetMaterialByID(1).DifficultyLevel)
}
