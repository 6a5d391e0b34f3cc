package model

// AIModel 可供辅导的AI模型档案
// swagger:model AIModel
type AIModel struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Developer        string            `json:"developer"`
	Category         string            `json:"category"` // "Large Language Model"、"Image Generation" 等
	ReleaseDate      string            `json:"releaseDate"`
	Description      string            `json:"description"`
	Capabilities     []string          `json:"capabilities"`
	Limitations      []string          `json:"limitations"`
	UseCases         []string          `json:"useCases"`
	Parameters       map[string]string `json:"parameters"` // 参数名 -> 说明
	ComplexityLevel  int               `json:"complexityLevel"` // 1-5
	PopularityRank   int               `json:"popularityRank"`  // 越小越热门
	TutorsAvailable  int               `json:"tutorsAvailable"`
	DocumentationURL string            `json:"documentationUrl"`
	IsDeprecated     bool              `json:"isDeprecated"`
}

func NewAIModel(id int, name, version, developer, category, releaseDate, description string, complexityLevel int) *AIModel {
	m := &AIModel{
		ID:          id,
		Name:        name,
		Version:     version,
		Developer:   developer,
		Category:    category,
		ReleaseDate: releaseDate,
		Description: description,
		Parameters:  make(map[string]string),
	}
	m.SetComplexityLevel(complexityLevel)
	return m
}

// 能力列表允许重复，与兴趣列表不同
func (m *AIModel) AddCapability(capability string) {
	m.Capabilities = append(m.Capabilities, capability)
}

func (m *AIModel) RemoveCapability(capability string) {
	m.Capabilities = removeString(m.Capabilities, capability)
}

func (m *AIModel) AddLimitation(limitation string) {
	m.Limitations = append(m.Limitations, limitation)
}

func (m *AIModel) RemoveLimitation(limitation string) {
	m.Limitations = removeString(m.Limitations, limitation)
}

func (m *AIModel) AddUseCase(useCase string) {
	m.UseCases = append(m.UseCases, useCase)
}

func (m *AIModel) RemoveUseCase(useCase string) {
	m.UseCases = removeString(m.UseCases, useCase)
}

func (m *AIModel) AddParameter(name, description string) {
	if m.Parameters == nil {
		m.Parameters = make(map[string]string)
	}
	m.Parameters[name] = description
}

func (m *AIModel) RemoveParameter(name string) {
	delete(m.Parameters, name)
}

// SetComplexityLevel 1-5 以外的值静默忽略
func (m *AIModel) SetComplexityLevel(level int) {
	if level >= 1 && level <= 5 {
		m.ComplexityLevel = level
	}
}

func (m *AIModel) IncrementTutorsAvailable() {
	m.TutorsAvailable++
}

func (m *AIModel) DecrementTutorsAvailable() {
	if m.TutorsAvailable > 0 {
		m.TutorsAvailable--
	}
}
