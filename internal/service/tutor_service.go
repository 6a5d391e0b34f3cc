package service

import (
	"sort"
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"go.uber.org/zap"
)

// TutorService 导师档案集合的属主（与账号集合分开维护）
type TutorService struct {
	mu     sync.RWMutex
	tutors []*model.Tutor
	nextID int
	store  repository.Store[*model.Tutor]
	logger *zap.Logger
}

func NewTutorService(store repository.Store[*model.Tutor], logger *zap.Logger) *TutorService {
	s := &TutorService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadTutors()
	return s
}

func (s *TutorService) loadTutors() {
	tutors, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load tutors", zap.Error(err))
	}

	if len(tutors) == 0 {
		tutors = seedTutors()
	}

	s.tutors = tutors
	for _, t := range s.tutors {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	s.logger.Info("Loaded tutors", zap.Int("count", len(s.tutors)))
}

func seedTutors() []*model.Tutor {
	tutor1 := model.NewTutor(1, "mchen", "tutor123", "Ming", "Chen",
		"ming.chen@example.com", "555-3333",
		[]string{"GPT-4", "Claude"},
		[]string{"Natural Language Processing", "Prompt Engineering"},
		"PhD in Computer Science", 6, 85.0)
	tutor1.SetModelExperience("GPT-4", 5)
	tutor1.SetModelExperience("Claude", 4)
	tutor1.SessionsCompleted = 42
	tutor1.AverageRating = 4.7

	tutor2 := model.NewTutor(2, "slee", "tutor456", "Sarah", "Lee",
		"sarah.lee@example.com", "555-4444",
		[]string{"DALL-E 3", "Stable Diffusion"},
		[]string{"Computer Vision", "Generative Art"},
		"MSc in Machine Learning", 4, 70.0)
	tutor2.SetModelExperience("DALL-E 3", 5)
	tutor2.SessionsCompleted = 18
	tutor2.AverageRating = 4.4

	return []*model.Tutor{tutor1, tutor2}
}

func (s *TutorService) persist() {
	if err := s.store.Save(s.tutors); err != nil {
		s.logger.Error("failed to save tutors", zap.Error(err))
	}
}

func (s *TutorService) AddTutor(t *model.Tutor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.nextID
		s.nextID++
	}

	s.tutors = append(s.tutors, t)
	s.persist()
	s.logger.Info("Added new tutor", zap.Int("id", t.ID), zap.String("name", t.FullName()))
	return true
}

func (s *TutorService) RemoveTutor(tutorID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tutors {
		if t.ID == tutorID {
			s.logger.Info("Removed tutor", zap.Int("id", tutorID), zap.String("name", t.FullName()))
			s.tutors = append(s.tutors[:i], s.tutors[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

func (s *TutorService) findByID(tutorID int) *model.Tutor {
	for _, t := range s.tutors {
		if t.ID == tutorID {
			return t
		}
	}
	return nil
}

func (s *TutorService) GetTutorByID(tutorID int) *model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(tutorID)
}

func (s *TutorService) GetAllTutors() []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Tutor, len(s.tutors))
	copy(result, s.tutors)
	return result
}

func (s *TutorService) mutate(tutorID int, fn func(*model.Tutor)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findByID(tutorID)
	if t == nil {
		return false
	}

	fn(t)
	s.persist()
	return true
}

func (s *TutorService) AddTutorSpecialization(tutorID int, aiModel string) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.AddSpecialization(aiModel) })
}

func (s *TutorService) RemoveTutorSpecialization(tutorID int, aiModel string) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.RemoveSpecialization(aiModel) })
}

func (s *TutorService) AddTutorDomainExpertise(tutorID int, domain string) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.AddDomainExpertise(domain) })
}

func (s *TutorService) RemoveTutorDomainExpertise(tutorID int, domain string) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.RemoveDomainExpertise(domain) })
}

// UpdateTutorModelExperience 越界等级由实体忽略，调用仍算成功
func (s *TutorService) UpdateTutorModelExperience(tutorID int, aiModel string, experienceLevel int) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.SetModelExperience(aiModel, experienceLevel) })
}

func (s *TutorService) GetTutorModelExperience(tutorID int) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findByID(tutorID)
	if t == nil {
		return map[string]int{}
	}
	return t.ModelExperience
}

func (s *TutorService) GetTutorsBySpecialization(aiModel string) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(t *model.Tutor) bool { return t.HasSpecialization(aiModel) })
}

func (s *TutorService) GetTutorsByDomain(domain string) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(t *model.Tutor) bool { return t.HasDomainExpertise(domain) })
}

func (s *TutorService) GetTutorsByExperience(minYearsExperience int) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(t *model.Tutor) bool { return t.ExperienceYears >= minYearsExperience })
}

func (s *TutorService) filterLocked(pred func(*model.Tutor) bool) []*model.Tutor {
	var results []*model.Tutor
	for _, t := range s.tutors {
		if pred(t) {
			results = append(results, t)
		}
	}
	return results
}

// UpdateTutorRating 按既有完成次数计入滚动平均
func (s *TutorService) UpdateTutorRating(tutorID int, newRating float64) bool {
	ok := s.mutate(tutorID, func(t *model.Tutor) { t.UpdateRating(newRating) })
	if ok {
		s.logger.Info("Updated tutor rating", zap.Int("id", tutorID), zap.Float64("rating", newRating))
	}
	return ok
}

func (s *TutorService) GetTutorAverageRating(tutorID int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findByID(tutorID)
	if t == nil {
		return 0
	}
	return t.AverageRating
}

func (s *TutorService) IncrementTutorSessions(tutorID int) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.IncrementSessionsCompleted() })
}

func (s *TutorService) GetTutorCompletedSessions(tutorID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findByID(tutorID)
	if t == nil {
		return 0
	}
	return t.SessionsCompleted
}

func (s *TutorService) UpdateTutorRate(tutorID int, hourlyRate float64) bool {
	return s.mutate(tutorID, func(t *model.Tutor) { t.HourlyRate = hourlyRate })
}

func (s *TutorService) GetTutorRate(tutorID int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findByID(tutorID)
	if t == nil {
		return 0
	}
	return t.HourlyRate
}

// GetPopularSpecializations 各AI模型有多少导师能教
func (s *TutorService) GetPopularSpecializations() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, t := range s.tutors {
		for _, spec := range t.Specializations {
			counts[spec]++
		}
	}
	return counts
}

func (s *TutorService) GetTopRatedTutors(count int) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.Tutor, len(s.tutors))
	copy(sorted, s.tutors)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AverageRating > sorted[j].AverageRating
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

func (s *TutorService) GetMostExperiencedTutors(count int) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.Tutor, len(s.tutors))
	copy(sorted, s.tutors)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExperienceYears > sorted[j].ExperienceYears
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}

// FindMatchingTutorsForClient 返回专长覆盖任一目标模型的导师，保持插入顺序
func (s *TutorService) FindMatchingTutorsForClient(clientID int, aiModels []string) []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterLocked(func(t *model.Tutor) bool {
		for _, m := range aiModels {
			if t.HasSpecialization(m) {
				return true
			}
		}
		return false
	})
}

// GetBestTutorMatch 指定模型专长里评分最高的导师，无人匹配时返回 nil
func (s *TutorService) GetBestTutorMatch(clientID int, aiModel string) *model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *model.Tutor
	for _, t := range s.tutors {
		if !t.HasSpecialization(aiModel) {
			continue
		}
		if best == nil || t.AverageRating > best.AverageRating {
			best = t
		}
	}
	return best
}
