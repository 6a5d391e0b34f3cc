package service

import (
	"sort"
	"strings"
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"
	"ai_tutor_crm_backend/internal/util"

	"go.uber.org/zap"
)

// ClientService 客户集合的唯一属主：CRUD、线性扫描查询和简单统计。
// 返回的实体指针与内部集合共享，调用方可绕过校验直接改字段（沿用原系统行为）。
type ClientService struct {
	mu      sync.RWMutex
	clients []*model.Client
	nextID  int
	store   repository.Store[*model.Client]
	logger  *zap.Logger
}

func NewClientService(store repository.Store[*model.Client], logger *zap.Logger) *ClientService {
	s := &ClientService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadClients()
	return s
}

func (s *ClientService) loadClients() {
	clients, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load clients", zap.Error(err))
	}

	if len(clients) == 0 {
		clients = seedClients()
	}

	s.clients = clients
	for _, c := range s.clients {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}

	s.logger.Info("Loaded clients", zap.Int("count", len(s.clients)))
}

func seedClients() []*model.Client {
	client1 := model.NewClient(1, "John", "Doe", "john.doe@example.com", "555-1111", "TechCorp", "CTO")
	client1.AddModelOfInterest("GPT-4")
	client1.AddModelOfInterest("DALL-E 3")
	client1.SetModelProficiency("GPT-4", 3)
	client1.RegistrationDate = "2025-01-15"
	client1.SessionsCompleted = 5
	client1.Budget = 1000.0

	client2 := model.NewClient(2, "Jane", "Smith", "jane.smith@example.com", "555-2222", "DataAnalytics Inc", "Data Scientist")
	client2.AddModelOfInterest("GPT-4")
	client2.AddModelOfInterest("Stable Diffusion")
	client2.AddModelOfInterest("BERT")
	client2.SetModelProficiency("BERT", 4)
	client2.RegistrationDate = "2025-02-10"
	client2.SessionsCompleted = 3
	client2.Budget = 750.0

	return []*model.Client{client1, client2}
}

// persist 变更已生效，落盘失败只记日志不回滚
func (s *ClientService) persist() {
	if err := s.store.Save(s.clients); err != nil {
		s.logger.Error("failed to save clients", zap.Error(err))
	}
}

// AddClient 先校验邮箱和电话，通过后才分配ID并入列
func (s *ClientService) AddClient(client *model.Client) error {
	if !util.IsValidEmail(client.Email) {
		return util.NewValidationError("Invalid email address")
	}
	if !util.IsValidPhone(client.Phone) {
		return util.NewValidationError("Invalid phone number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == 0 {
		client.ID = s.nextID
		s.nextID++
	}

	s.clients = append(s.clients, client)
	s.persist()

	s.logger.Info("Added new client", zap.Int("id", client.ID), zap.String("name", client.FullName()))
	return nil
}

func (s *ClientService) RemoveClient(clientID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.clients {
		if c.ID == clientID {
			s.logger.Info("Removed client", zap.Int("id", clientID), zap.String("name", c.FullName()))
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// UpdateClientDetails 找不到返回 false；字段校验失败返回错误且不做部分写入
func (s *ClientService) UpdateClientDetails(clientID int, firstName, lastName, email, phone, company, position string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false, nil
	}

	if !util.IsValidEmail(email) {
		return false, util.NewValidationError("Invalid email address")
	}
	if !util.IsValidPhone(phone) {
		return false, util.NewValidationError("Invalid phone number")
	}

	client.FirstName = firstName
	client.LastName = lastName
	client.Email = email
	client.Phone = phone
	client.Company = company
	client.Position = position

	s.persist()
	s.logger.Info("Updated client details", zap.Int("id", clientID), zap.String("name", client.FullName()))
	return true, nil
}

func (s *ClientService) findByID(clientID int) *model.Client {
	for _, c := range s.clients {
		if c.ID == clientID {
			return c
		}
	}
	return nil
}

func (s *ClientService) GetClientByID(clientID int) *model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(clientID)
}

// GetAllClients 返回集合的快照副本，修改返回的切片不影响内部存储
func (s *ClientService) GetAllClients() []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Client, len(s.clients))
	copy(result, s.clients)
	return result
}

// SearchClientsByName 大小写不敏感的全名子串匹配，保持插入顺序
func (s *ClientService) SearchClientsByName(name string) []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(name)
	var results []*model.Client
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.FullName()), search) {
			results = append(results, c)
		}
	}
	return results
}

func (s *ClientService) SearchClientsByCompany(company string) []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(company)
	var results []*model.Client
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.Company), search) {
			results = append(results, c)
		}
	}
	return results
}

func (s *ClientService) GetClientsInterestedInModel(aiModel string) []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*model.Client
	for _, c := range s.clients {
		if c.IsInterestedIn(aiModel) {
			results = append(results, c)
		}
	}
	return results
}

// UpdateClientProgress 越界等级由实体自身忽略，调用仍算成功
func (s *ClientService) UpdateClientProgress(clientID int, aiModel string, proficiencyLevel int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false
	}

	client.SetModelProficiency(aiModel, proficiencyLevel)
	s.persist()

	s.logger.Info("Updated client progress",
		zap.Int("id", clientID),
		zap.String("model", aiModel),
		zap.Int("level", proficiencyLevel))
	return true
}

func (s *ClientService) GetClientProficiencies(clientID int) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client := s.findByID(clientID)
	if client == nil {
		return map[string]int{}
	}
	return client.ModelProficiency
}

func (s *ClientService) AddClientInterest(clientID int, aiModel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false
	}

	client.AddModelOfInterest(aiModel)
	s.persist()
	s.logger.Info("Added client interest", zap.Int("id", clientID), zap.String("model", aiModel))
	return true
}

func (s *ClientService) RemoveClientInterest(clientID int, aiModel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false
	}

	client.RemoveModelOfInterest(aiModel)
	s.persist()
	s.logger.Info("Removed client interest", zap.Int("id", clientID), zap.String("model", aiModel))
	return true
}

// UpdateClientSessionInfo 完成次数加一并刷新最近会话日期
func (s *ClientService) UpdateClientSessionInfo(clientID int, sessionDate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false
	}

	client.IncrementSessionsCompleted()
	client.LastSessionDate = sessionDate
	s.persist()

	s.logger.Info("Updated client session info",
		zap.Int("id", clientID),
		zap.Int("totalSessions", client.SessionsCompleted))
	return true
}

func (s *ClientService) GetClientCompletedSessions(clientID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client := s.findByID(clientID)
	if client == nil {
		return 0
	}
	return client.SessionsCompleted
}

// UpdateClientBudget isAddition 为假时按实体规则扣减（不足则归零）
func (s *ClientService) UpdateClientBudget(clientID int, amount float64, isAddition bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findByID(clientID)
	if client == nil {
		return false
	}

	if isAddition {
		client.AddToBudget(amount)
		s.logger.Info("Added to client budget", zap.Int("id", clientID), zap.Float64("amount", amount))
	} else {
		client.DeductFromBudget(amount)
		s.logger.Info("Deducted from client budget", zap.Int("id", clientID), zap.Float64("amount", amount))
	}

	s.persist()
	return true
}

func (s *ClientService) GetClientBudget(clientID int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client := s.findByID(clientID)
	if client == nil {
		return 0
	}
	return client.Budget
}

// GetPopularAIModels 各模型被多少客户列入兴趣
func (s *ClientService) GetPopularAIModels() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range s.clients {
		for _, m := range c.ModelsOfInterest {
			counts[m]++
		}
	}
	return counts
}

func (s *ClientService) GetAverageClientSessions() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.clients) == 0 {
		return 0
	}

	total := 0
	for _, c := range s.clients {
		total += c.SessionsCompleted
	}
	return float64(total) / float64(len(s.clients))
}

// GetTopClients 按完成会话数降序取前 count 个，同值保持插入顺序
func (s *ClientService) GetTopClients(count int) []*model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]*model.Client, len(s.clients))
	copy(sorted, s.clients)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SessionsCompleted > sorted[j].SessionsCompleted
	})

	if count < 0 {
		count = 0
	}
	if count > len(sorted) {
		count = len(sorted)
	}
	return sorted[:count]
}
