package service

import (
	"sort"
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"go.uber.org/zap"
)

// AIModelService AI模型目录的唯一属主
type AIModelService struct {
	mu     sync.RWMutex
	models []*model.AIModel
	nextID int
	store  repository.Store[*model.AIModel]
	logger *zap.Logger
}

func NewAIModelService(store repository.Store[*model.AIModel], logger *zap.Logger) *AIModelService {
	s := &AIModelService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadModels()
	return s
}

func (s *AIModelService) loadModels() {
	models, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load AI models", zap.Error(err))
	}

	if len(models) == 0 {
		models = seedAIModels()
	}

	s.models = models
	for _, m := range s.models {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}

	s.logger.Info("Loaded AI models", zap.Int("count", len(s.models)))
}

func seedAIModels() []*model.AIModel {
	gpt4 := model.NewAIModel(1, "GPT-4", "4.0", "OpenAI", "Large Language Model",
		"2023-03-14", "Advanced language model capable of understanding and generating human-like text", 4)
	gpt4.AddCapability("Natural language understanding")
	gpt4.AddCapability("Text generation")
	gpt4.AddCapability("Translation")
	gpt4.AddCapability("Code generation")
	gpt4.AddLimitation("May generate incorrect information")
	gpt4.AddLimitation("Limited knowledge cutoff")
	gpt4.AddUseCase("Content creation")
	gpt4.AddUseCase("Customer support automation")
	gpt4.AddUseCase("Programming assistance")
	gpt4.AddParameter("Temperature", "Controls randomness of outputs")
	gpt4.AddParameter("Max tokens", "Controls length of generated text")
	gpt4.PopularityRank = 1
	gpt4.TutorsAvailable = 4
	gpt4.DocumentationURL = "https://platform.openai.com/docs/models/gpt-4"

	dalle3 := model.NewAIModel(2, "DALL-E 3", "3.0", "OpenAI", "Image Generation",
		"2023-10-03", "Image generation model that can create detailed images from text descriptions", 3)
	dalle3.AddCapability("Image generation from text")
	dalle3.AddCapability("Style adaptation")
	dalle3.AddCapability("Artistic rendering")
	dalle3.AddLimitation("May misinterpret complex prompts")
	dalle3.AddLimitation("Limited understanding of physical constraints")
	dalle3.AddUseCase("Marketing materials")
	dalle3.AddUseCase("Concept art")
	dalle3.AddUseCase("Visual storytelling")
	dalle3.AddParameter("Style", "Controls artistic style of generated images")
	dalle3.AddParameter("Size", "Controls dimensions of output images")
	dalle3.PopularityRank = 2
	dalle3.TutorsAvailable = 3
	dalle3.DocumentationURL = "https://platform.openai.com/docs/models/dall-e-3"

	claude := model.NewAIModel(3, "Claude", "2.0", "Anthropic", "Large Language Model",
		"2023-07-11", "Conversational AI assistant focused on helpful, harmless, and honest interactions", 3)
	claude.AddCapability("Natural language understanding")
	claude.AddCapability("Contextual responses")
	claude.AddCapability("Long context window")
	claude.AddLimitation("May refuse certain types of content")
	claude.AddLimitation("Cannot browse the internet")
	claude.AddUseCase("Customer support")
	claude.AddUseCase("Content creation")
	claude.AddUseCase("Research assistance")
	claude.AddParameter("Temperature", "Controls randomness of outputs")
	claude.AddParameter("Max tokens", "Controls length of generated text")
	claude.PopularityRank = 3
	claude.TutorsAvailable = 2
	claude.DocumentationURL = "https://www.anthropic.com/claude"

	return []*model.AIModel{gpt4, dalle3, claude}
}

func (s *AIModelService) persist() {
	if err := s.store.Save(s.models); err != nil {
		s.logger.Error("failed to save AI models", zap.Error(err))
	}
}

func (s *AIModelService) AddModel(m *model.AIModel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == 0 {
		m.ID = s.nextID
		s.nextID++
	}

	s.models = append(s.models, m)
	s.persist()

	s.logger.Info("Added new AI model", zap.Int("id", m.ID), zap.String("name", m.Name))
	return true
}

func (s *AIModelService) RemoveModel(modelID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.models {
		if m.ID == modelID {
			s.logger.Info("Removed AI model", zap.Int("id", modelID), zap.String("name", m.Name))
			s.models = append(s.models[:i], s.models[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

func (s *AIModelService) UpdateModel(modelID int, name, version, developer, category, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findByID(modelID)
	if m == nil {
		return false
	}

	m.Name = name
	m.Version = version
	m.Developer = developer
	m.Category = category
	m.Description = description

	s.persist()
	s.logger.Info("Updated AI model", zap.Int("id", modelID), zap.String("name", m.Name))
	return true
}

func (s *AIModelService) findByID(modelID int) *model.AIModel {
	for _, m := range s.models {
		if m.ID == modelID {
			return m
		}
	}
	return nil
}

func (s *AIModelService) GetModelByID(modelID int) *model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(modelID)
}

func (s *AIModelService) GetModelByName(name string) *model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (s *AIModelService) GetAllModels() []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.AIModel, len(s.models))
	copy(result, s.models)
	return result
}

func (s *AIModelService) GetModelsByCategory(category string) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.AIModel) bool { return m.Category == category })
}

func (s *AIModelService) GetModelsByDeveloper(developer string) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.AIModel) bool { return m.Developer == developer })
}

func (s *AIModelService) GetModelsByComplexity(complexityLevel int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(m *model.AIModel) bool { return m.ComplexityLevel == complexityLevel })
}

// filterLocked 调用方持有读锁；结果保持插入顺序
func (s *AIModelService) filterLocked(pred func(*model.AIModel) bool) []*model.AIModel {
	var results []*model.AIModel
	for _, m := range s.models {
		if pred(m) {
			results = append(results, m)
		}
	}
	return results
}

// mutate 按ID查找并应用变更，找不到返回 false
func (s *AIModelService) mutate(modelID int, fn func(*model.AIModel)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findByID(modelID)
	if m == nil {
		return false
	}

	fn(m)
	s.persist()
	return true
}

func (s *AIModelService) AddModelCapability(modelID int, capability string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.AddCapability(capability) })
}

func (s *AIModelService) RemoveModelCapability(modelID int, capability string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.RemoveCapability(capability) })
}

func (s *AIModelService) AddModelLimitation(modelID int, limitation string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.AddLimitation(limitation) })
}

func (s *AIModelService) RemoveModelLimitation(modelID int, limitation string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.RemoveLimitation(limitation) })
}

func (s *AIModelService) AddModelUseCase(modelID int, useCase string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.AddUseCase(useCase) })
}

func (s *AIModelService) RemoveModelUseCase(modelID int, useCase string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.RemoveUseCase(useCase) })
}

func (s *AIModelService) AddModelParameter(modelID int, param, description string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.AddParameter(param, description) })
}

func (s *AIModelService) RemoveModelParameter(modelID int, param string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.RemoveParameter(param) })
}

// UpdateModelComplexity 越界值由实体忽略，调用仍算成功
func (s *AIModelService) UpdateModelComplexity(modelID int, level int) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.SetComplexityLevel(level) })
}

func (s *AIModelService) UpdateModelPopularity(modelID int, rank int) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.PopularityRank = rank })
}

func (s *AIModelService) UpdateTutorsAvailable(modelID int, count int) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.TutorsAvailable = count })
}

func (s *AIModelService) MarkModelAsDeprecated(modelID int, deprecated bool) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.IsDeprecated = deprecated })
}

func (s *AIModelService) UpdateModelDocumentation(modelID int, url string) bool {
	return s.mutate(modelID, func(m *model.AIModel) { m.DocumentationURL = url })
}

func (s *AIModelService) GetModelDocumentation(modelID int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(modelID)
	if m == nil {
		return ""
	}
	return m.DocumentationURL
}

// GetMostPopularModels 按热度排名升序（排名越小越热门），同值保持插入顺序
func (s *AIModelService) GetMostPopularModels(count int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.AIModel, len(s.models))
	copy(sorted, s.models)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PopularityRank < sorted[j].PopularityRank
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

func (s *AIModelService) GetModelCategoryCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, m := range s.models {
		counts[m.Category]++
	}
	return counts
}

func (s *AIModelService) GetDeveloperModelCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, m := range s.models {
		counts[m.Developer]++
	}
	return counts
}

func (s *AIModelService) GetAverageModelComplexity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.models) == 0 {
		return 0
	}

	total := 0.0
	for _, m := range s.models {
		total += float64(m.ComplexityLevel)
	}
	return total / float64(len(s.models))
}

// GetRecommendedLearningPath 按复杂度从低到高给出学习顺序
func (s *AIModelService) GetRecommendedLearningPath(clientID int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.AIModel, len(s.models))
	copy(sorted, s.models)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ComplexityLevel < sorted[j].ComplexityLevel
	})
	return sorted
}

// GetRelatedModels 同类别模型
func (s *AIModelService) GetRelatedModels(modelID int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(modelID)
	if m == nil {
		return nil
	}
	return s.filterLocked(func(other *model.AIModel) bool {
		return other.ID != m.ID && other.Category == m.Category
	})
}

// GetPrerequisiteModels 同类别中复杂度更低的模型
func (s *AIModelService) GetPrerequisiteModels(modelID int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(modelID)
	if m == nil {
		return nil
	}
	return s.filterLocked(func(other *model.AIModel) bool {
		return other.Category == m.Category && other.ComplexityLevel < m.ComplexityLevel
	})
}

// GetNextLevelModels 同类别中复杂度更高的模型
func (s *AIModelService) GetNextLevelModels(modelID int) []*model.AIModel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findByID(modelID)
	if m == nil {
		return nil
	}
	return s.filterLocked(func(other *model.AIModel) bool {
		return other.Category == m.Category && other.ComplexityLevel > m.ComplexityLevel
	})
}
