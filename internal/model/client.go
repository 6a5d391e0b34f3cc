package model

// Client 付费学习AI技术的企业客户
// swagger:model Client
type Client struct {
	ID                int            `json:"id"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Company           string         `json:"company"`
	Position          string         `json:"position"`
	ModelsOfInterest  []string       `json:"modelsOfInterest"` // 想学习的AI模型
	LearningGoals     []string       `json:"learningGoals"`
	ModelProficiency  map[string]int `json:"modelProficiency"` // 模型 -> 当前水平(1-5)
	RegistrationDate  string         `json:"registrationDate"`
	SessionsCompleted int            `json:"sessionsCompleted"`
	LastSessionDate   string         `json:"lastSessionDate"`
	Budget            float64        `json:"budget"` // 可用辅导预算
}

func NewClient(id int, firstName, lastName, email, phone, company, position string) *Client {
	return &Client{
		ID:               id,
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            phone,
		Company:          company,
		Position:         position,
		ModelProficiency: make(map[string]int),
	}
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// AddModelOfInterest 已存在时不重复添加
func (c *Client) AddModelOfInterest(aiModel string) {
	if !c.IsInterestedIn(aiModel) {
		c.ModelsOfInterest = append(c.ModelsOfInterest, aiModel)
	}
}

func (c *Client) RemoveModelOfInterest(aiModel string) {
	c.ModelsOfInterest = removeString(c.ModelsOfInterest, aiModel)
}

func (c *Client) IsInterestedIn(aiModel string) bool {
	return containsString(c.ModelsOfInterest, aiModel)
}

func (c *Client) AddLearningGoal(goal string) {
	c.LearningGoals = append(c.LearningGoals, goal)
}

func (c *Client) RemoveLearningGoal(goal string) {
	c.LearningGoals = removeString(c.LearningGoals, goal)
}

// SetModelProficiency 水平限定在 1-5，越界写入被忽略
func (c *Client) SetModelProficiency(aiModel string, level int) {
	if level >= 1 && level <= 5 {
		if c.ModelProficiency == nil {
			c.ModelProficiency = make(map[string]int)
		}
		c.ModelProficiency[aiModel] = level
	}
}

func (c *Client) GetModelProficiency(aiModel string) int {
	return c.ModelProficiency[aiModel]
}

func (c *Client) IncrementSessionsCompleted() {
	c.SessionsCompleted++
}

// DeductFromBudget 扣减金额超过余额时归零，预算永不为负
func (c *Client) DeductFromBudget(amount float64) {
	if amount <= c.Budget {
		c.Budget -= amount
	} else {
		c.Budget = 0
	}
}

func (c *Client) AddToBudget(amount float64) {
	c.Budget += amount
}
