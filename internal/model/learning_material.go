package model

import "fmt"

// LearningMaterial 辅导用学习资料
// swagger:model LearningMaterial
type LearningMaterial struct {
	ID                   int      `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Type                 string   `json:"type"`   // "Document"、"Video"、"Interactive"、"Exercise" 等
	Format               string   `json:"format"` // "PDF"、"MP4"、"Notebook" 等
	Author               string   `json:"author"`
	CreationDate         string   `json:"creationDate"`
	AIModelIDs           []int    `json:"aiModelIds"` // 关联的AI模型
	Tags                 []string `json:"tags"`
	DifficultyLevel      int      `json:"difficultyLevel"` // 1-5
	URL                  string   `json:"url"`
	LocalPath            string   `json:"localPath"`
	EstimatedTimeMinutes int      `json:"estimatedTimeMinutes"`
	Rating               float64  `json:"rating"`
	RatingCount          int      `json:"ratingCount"`
	UsageCount           int      `json:"usageCount"`
}

func NewLearningMaterial(id int, title, description, materialType, format, author string) *LearningMaterial {
	return &LearningMaterial{
		ID:          id,
		Title:       title,
		Description: description,
		Type:        materialType,
		Format:      format,
		Author:      author,
	}
}

func (m *LearningMaterial) AddAIModel(modelID int) {
	if !m.IsRelevantForModel(modelID) {
		m.AIModelIDs = append(m.AIModelIDs, modelID)
	}
}

func (m *LearningMaterial) RemoveAIModel(modelID int) {
	for i, id := range m.AIModelIDs {
		if id == modelID {
			m.AIModelIDs = append(m.AIModelIDs[:i], m.AIModelIDs[i+1:]...)
			return
		}
	}
}

func (m *LearningMaterial) IsRelevantForModel(modelID int) bool {
	for _, id := range m.AIModelIDs {
		if id == modelID {
			return true
		}
	}
	return false
}

func (m *LearningMaterial) AddTag(tag string) {
	if !m.HasTag(tag) {
		m.Tags = append(m.Tags, tag)
	}
}

func (m *LearningMaterial) RemoveTag(tag string) {
	m.Tags = removeString(m.Tags, tag)
}

func (m *LearningMaterial) HasTag(tag string) bool {
	return containsString(m.Tags, tag)
}

// SetDifficultyLevel 1-5 以外的值静默忽略
func (m *LearningMaterial) SetDifficultyLevel(level int) {
	if level >= 1 && level <= 5 {
		m.DifficultyLevel = level
	}
}

// UpdateRating 按历史评分次数做滚动平均
func (m *LearningMaterial) UpdateRating(newRating float64) {
	if m.RatingCount == 0 {
		m.Rating = newRating
	} else {
		m.Rating = (m.Rating*float64(m.RatingCount) + newRating) / float64(m.RatingCount+1)
	}
	m.RatingCount++
}

func (m *LearningMaterial) IncrementUsageCount() {
	m.UsageCount++
}

// DifficultyDescription 难度等级的文字描述
func (m *LearningMaterial) DifficultyDescription() string {
	switch m.DifficultyLevel {
	case 1:
		return "Beginner"
	case 2:
		return "Elementary"
	case 3:
		return "Intermediate"
	case 4:
		return "Advanced"
	case 5:
		return "Expert"
	default:
		return "Unknown"
	}
}

// FormattedEstimatedTime 返回 "HH:MM" 格式的预计用时
func (m *LearningMaterial) FormattedEstimatedTime() string {
	return fmt.Sprintf("%02d:%02d", m.EstimatedTimeMinutes/60, m.EstimatedTimeMinutes%60)
}

// IsDigital 是否为数字格式资料
func (m *LearningMaterial) IsDigital() bool {
	return m.URL != "" || m.LocalPath != ""
}
