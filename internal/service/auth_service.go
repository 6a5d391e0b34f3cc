package service

import (
	"sync"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/repository"

	"go.uber.org/zap"
)

// AuthService 账号集合的属主（管理员和导师共用一个集合，按角色变体区分），
// 并维护进程级的"当前登录"单会话。HTTP层是无状态JWT，不依赖这个会话。
type AuthService struct {
	mu          sync.RWMutex
	users       []model.User
	nextID      int
	currentUser model.User
	loggedIn    bool
	store       repository.Store[model.User]
	logger      *zap.Logger
}

func NewAuthService(store repository.Store[model.User], logger *zap.Logger) *AuthService {
	s := &AuthService{
		nextID: 1,
		store:  store,
		logger: logger,
	}
	s.loadUsers()
	return s
}

func (s *AuthService) loadUsers() {
	users, err := s.store.Load()
	if err != nil {
		s.logger.Error("failed to load users", zap.Error(err))
	}

	if len(users) == 0 {
		users = seedUsers()
	}

	s.users = users
	for _, u := range s.users {
		if u.Base().ID >= s.nextID {
			s.nextID = u.Base().ID + 1
		}
	}

	s.logger.Info("Loaded users", zap.Int("count", len(s.users)))
}

func seedUsers() []model.User {
	admin := &model.Admin{
		UserBase: model.UserBase{
			ID: 1, Username: "admin", Password: "admin123",
			FirstName: "Admin", LastName: "User",
			Email: "admin@example.com", Phone: "555-1234",
		},
		AccessLevel:    "Full",
		CanManageAI:    true,
		CanManageUsers: true,
	}

	tutor := model.NewTutor(2, "tutor", "tutor123", "Tutor", "User",
		"tutor@example.com", "555-5678",
		[]string{"Large Language Models", "Computer Vision"},
		[]string{"Natural Language Processing", "Neural Networks"},
		"PhD in Computer Science", 5, 75.0)

	return []model.User{admin, tutor}
}

func (s *AuthService) persist() {
	if err := s.store.Save(s.users); err != nil {
		s.logger.Error("failed to save users", zap.Error(err))
	}
}

// Login 明文逐条比对用户名密码；成功时覆盖当前会话（无需先登出），
// 失败不改变已有会话状态，也不做锁定或限流
func (s *AuthService) Login(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Base().Username == username && u.Base().Password == password {
			s.currentUser = u
			s.loggedIn = true
			s.logger.Info("User logged in", zap.String("username", username), zap.String("role", string(u.Role())))
			return true
		}
	}
	return false
}

func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
	s.loggedIn = false
}

func (s *AuthService) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

func (s *AuthService) CurrentUser() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

// Register 追加注册，不查重用户名
func (s *AuthService) Register(user model.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Base().ID == 0 {
		user.Base().ID = s.nextID
		s.nextID++
	} else if user.Base().ID >= s.nextID {
		s.nextID = user.Base().ID + 1
	}
	s.users = append(s.users, user)
	s.persist()
	s.logger.Info("Registered user", zap.String("username", user.Base().Username), zap.String("role", string(user.Role())))
	return true
}

func (s *AuthService) DeleteUser(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.Base().ID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.persist()
			s.logger.Info("Deleted user", zap.Int("id", userID))
			return true
		}
	}
	return false
}

func (s *AuthService) UpdateUserPassword(userID int, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(userID)
	if u == nil {
		return false
	}

	u.Base().Password = newPassword
	s.persist()
	return true
}

func (s *AuthService) UpdateUserDetails(userID int, firstName, lastName, email, phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findByID(userID)
	if u == nil {
		return false
	}

	base := u.Base()
	base.FirstName = firstName
	base.LastName = lastName
	base.Email = email
	base.Phone = phone
	s.persist()
	return true
}

func (s *AuthService) findByID(userID int) model.User {
	for _, u := range s.users {
		if u.Base().ID == userID {
			return u
		}
	}
	return nil
}

func (s *AuthService) GetUserByID(userID int) model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByID(userID)
}

func (s *AuthService) GetUserByUsername(username string) model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Base().Username == username {
			return u
		}
	}
	return nil
}

func (s *AuthService) GetAllUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.User, len(s.users))
	copy(result, s.users)
	return result
}

// GetAllTutors 角色变体过滤，无需向下转型
func (s *AuthService) GetAllTutors() []*model.Tutor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tutors []*model.Tutor
	for _, u := range s.users {
		if t, ok := u.(*model.Tutor); ok {
			tutors = append(tutors, t)
		}
	}
	return tutors
}

func (s *AuthService) GetAllAdmins() []*model.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var admins []*model.Admin
	for _, u := range s.users {
		if a, ok := u.(*model.Admin); ok {
			admins = append(admins, a)
		}
	}
	return admins
}

func (s *AuthService) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn || s.currentUser == nil {
		return false
	}
	return s.currentUser.Role() == model.RoleAdmin
}

func (s *AuthService) IsTutor() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn || s.currentUser == nil {
		return false
	}
	return s.currentUser.Role() == model.RoleTutor
}

// HasPermission 粗粒度授权：管理员拥有一切权限，导师级的细分权限未实现
func (s *AuthService) HasPermission(permission string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loggedIn || s.currentUser == nil {
		return false
	}

	if s.currentUser.Role() == model.RoleAdmin {
		return true
	}
	return false
}
