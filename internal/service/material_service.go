package service

import (
	"sort"
	"strings"
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"go.uber.org/zap"
)

// LearningMaterialService 学习资料库的属主
type LearningMaterialService struct {
	mu        sync.RWMutex
	materials []*model.LearningMaterial
	nextID    int
	store     repository.Store[*model.LearningMaterial]
	logger    *zap.Logger
}

func NewLearningMaterialService(store repository.Store[*model.LearningMaterial], logger *zap.Logger) *LearningMaterialService {
	s := &LearningMaterialService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadMaterials()
	return s
}

func (s *LearningMaterialService) loadMaterials() {
	materials, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load materials", zap.Error(err))
	}

	if len(materials) == 0 {
		materials = seedMaterials()
	}

	s.materials = materials
	for _, m := range s.materials {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}

	s.logger.Info("Loaded learning materials", zap.Int("count", len(s.materials)))
}

func seedMaterials() []*model.LearningMaterial {
	m1 := model.NewLearningMaterial(1, "Prompt Engineering Fundamentals",
		"A practical introduction to writing effective prompts for large language models",
		"Document", "PDF", "Ming Chen")
	m1.CreationDate = "2025-01-20"
	m1.AddAIModel(1)
	m1.AddAIModel(3)
	m1.AddTag("prompting")
	m1.AddTag("beginner")
	m1.SetDifficultyLevel(1)
	m1.URL = "https://materials.example.com/prompt-engineering.pdf"
	m1.EstimatedTimeMinutes = 45
	m1.UpdateRating(4.6)
	m1.UsageCount = 12

	m2 := model.NewLearningMaterial(2, "Image Generation Workshop",
		"Hands-on video walkthrough of text-to-image workflows",
		"Video", "MP4", "Sarah Lee")
	m2.CreationDate = "2025-02-05"
	m2.AddAIModel(2)
	m2.AddTag("image-generation")
	m2.AddTag("workshop")
	m2.SetDifficultyLevel(2)
	m2.URL = "https://materials.example.com/image-gen-workshop.mp4"
	m2.EstimatedTimeMinutes = 90
	m2.UpdateRating(4.2)
	m2.UsageCount = 7

	m3 := model.NewLearningMaterial(3, "Advanced Context Window Techniques",
		"Exercises for working with long documents and retrieval in LLM workflows",
		"Exercise", "Notebook", "Ming Chen")
	m3.CreationDate = "2025-02-18"
	m3.AddAIModel(1)
	m3.AddAIModel(3)
	m3.AddTag("prompting")
	m3.AddTag("advanced")
	m3.SetDifficultyLevel(4)
	m3.URL = "https://materials.example.com/context-window.ipynb"
	m3.EstimatedTimeMinutes = 120
	m3.UpdateRating(4.8)
	m3.UsageCount = 4

	return []*model.LearningMaterial{m1, m2, m3}
}

func (s *LearningMaterialService) persist() {
	if err := s.store.Save(s.materials); err != nil {
		s.logger.Error("failed to save materials", zap.Error(err))
	}
}

func (s *LearningMaterialService) AddMaterial(m *model.LearningMaterial) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == 0 {
		m.ID = s.nextID
		s.nextID++
	}

	s.materials = append(s.materials, m)
	s.persist()
	s.logger.Info("Added learning material", zap.Int("id", m.ID), zap.String("title", m.Title))
	return true
}

func (s *LearningMaterialService) RemoveMaterial(materialID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.materials {
		if m.ID == materialID {
			s.logger.Info("Removed learning material", zap.Int("id", materialID), zap.String("title", m.Title))
			s.materials = append(s.materials[:i], s.materials[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

func (s *LearningMaterialService) UpdateMaterial(materialID int, title, description, materialType, format, author string) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) {
		m.Title = title
		m.Description = description
		m.Type = materialType
		m.Format = format
		m.Author = author
	})
}

func (s *LearningMaterialService) findByID(materialID int) *model.LearningMaterial {
	for _, m := range s.materials {
		if m.ID == materialID {
			return m
		}
	}
	return nil
}

func (s *LearningMaterialService) GetMaterialByID(materialID int) *model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(materialID)
}

func (s *LearningMaterialService) GetAllMaterials() []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.LearningMaterial, len(s.materials))
	copy(result, s.materials)
	return result
}

func (s *LearningMaterialService) GetMaterialsByType(materialType string) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.Type == materialType })
}

func (s *LearningMaterialService) GetMaterialsByFormat(format string) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.Format == format })
}

func (s *LearningMaterialService) GetMaterialsByAuthor(author string) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.Author == author })
}

func (s *LearningMaterialService) GetMaterialsByDifficulty(level int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.DifficultyLevel == level })
}

// SearchMaterialsByTitle 大小写不敏感的标题子串匹配
func (s *LearningMaterialService) SearchMaterialsByTitle(title string) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(title)
	return s.filterLocked(func(m *model.LearningMaterial) bool {
		return strings.Contains(strings.ToLower(m.Title), search)
	})
}

func (s *LearningMaterialService) SearchMaterialsByTag(tag string) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.HasTag(tag) })
}

func (s *LearningMaterialService) filterLocked(pred func(*model.LearningMaterial) bool) []*model.LearningMaterial {
	var results []*model.LearningMaterial
	for _, m := range s.materials {
		if pred(m) {
			results = append(results, m)
		}
	}
	return results
}

func (s *LearningMaterialService) mutate(materialID int, fn func(*model.LearningMaterial)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findByID(materialID)
	if m == nil {
		return false
	}

	fn(m)
	s.persist()
	return true
}

func (s *LearningMaterialService) AddMaterialAIModel(materialID, aiModelID int) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.AddAIModel(aiModelID) })
}

func (s *LearningMaterialService) RemoveMaterialAIModel(materialID, aiModelID int) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.RemoveAIModel(aiModelID) })
}

func (s *LearningMaterialService) GetMaterialsForAIModel(aiModelID int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.LearningMaterial) bool { return m.IsRelevantForModel(aiModelID) })
}

func (s *LearningMaterialService) AddMaterialTag(materialID int, tag string) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.AddTag(tag) })
}

func (s *LearningMaterialService) RemoveMaterialTag(materialID int, tag string) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.RemoveTag(tag) })
}

// GetAllTags 去重后的全部标签，按首次出现顺序
func (s *LearningMaterialService) GetAllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var tags []string
	for _, m := range s.materials {
		for _, tag := range m.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func (s *LearningMaterialService) UpdateMaterialDifficulty(materialID, level int) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.SetDifficultyLevel(level) })
}

func (s *LearningMaterialService) UpdateMaterialLocation(materialID int, url, localPath string) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) {
		m.URL = url
		m.LocalPath = localPath
	})
}

func (s *LearningMaterialService) UpdateMaterialTime(materialID, estimatedMinutes int) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.EstimatedTimeMinutes = estimatedMinutes })
}

func (s *LearningMaterialService) UpdateMaterialRating(materialID int, rating float64) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.UpdateRating(rating) })
}

func (s *LearningMaterialService) IncrementMaterialUsage(materialID int) bool {
	return s.mutate(materialID, func(m *model.LearningMaterial) { m.IncrementUsageCount() })
}

func (s *LearningMaterialService) GetMaterialRating(materialID int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(materialID)
	if m == nil {
		return 0
	}
	return m.Rating
}

func (s *LearningMaterialService) GetMaterialUsageCount(materialID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(materialID)
	if m == nil {
		return 0
	}
	return m.UsageCount
}

func (s *LearningMaterialService) GetMostUsedMaterials(count int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.LearningMaterial, len(s.materials))
	copy(sorted, s.materials)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsageCount > sorted[j].UsageCount
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

func (s *LearningMaterialService) GetTopRatedMaterials(count int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.LearningMaterial, len(s.materials))
	copy(sorted, s.materials)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

func (s *LearningMaterialService) GetMaterialTypeDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, m := range s.materials {
		counts[m.Type]++
	}
	return counts
}

// GetRecommendedMaterials 简单推荐：按评分降序
func (s *LearningMaterialService) GetRecommendedMaterials(clientID int) []*model.LearningMaterial {
	return s.GetTopRatedMaterials(len(s.GetAllMaterials()))
}

// GetRelatedMaterials 与指定资料共享AI模型或标签的其他资料
func (s *LearningMaterialService) GetRelatedMaterials(materialID int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(materialID)
	if m == nil {
		return nil
	}

	return s.filterLocked(func(other *model.LearningMaterial) bool {
		if other.ID == m.ID {
			return false
		}
		for _, id := range m.AIModelIDs {
			if other.IsRelevantForModel(id) {
				return true
			}
		}
		for _, tag := range m.Tags {
			if other.HasTag(tag) {
				return true
			}
		}
		return false
	})
}

// GetLearningPathMaterials 指定模型下不低于客户当前水平的资料，按难度升序
func (s *LearningMaterialService) GetLearningPathMaterials(aiModelID, clientProficiency int) []*model.LearningMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := s.filterLocked(func(m *model.LearningMaterial) bool {
		return m.IsRelevantForModel(aiModelID) && m.DifficultyLevel >= clientProficiency
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DifficultyLevel < results[j].DifficultyLevel
	})
	return results
}
