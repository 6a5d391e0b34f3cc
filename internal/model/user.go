package model

// UserRole 用户角色，作为变体标签而不是数据库枚举
type UserRole string

const (
	RoleAdmin UserRole = "Admin"
	RoleTutor UserRole = "Tutor"
)

// UserBase 所有账号共享的基础字段
// swagger:model UserBase
type UserBase struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (u *UserBase) FullName() string {
	return u.FirstName + " " + u.LastName
}

// User 账号变体接口：Admin 和 Tutor 共用一个集合，按 Role 区分
type User interface {
	Base() *UserBase
	Role() UserRole
}

// Admin 管理员账号
// swagger:model Admin
type Admin struct {
	UserBase
	AccessLevel    string `json:"accessLevel"` // "Full"、"Limited" 等
	CanManageAI    bool   `json:"canManageAI"`
	CanManageUsers bool   `json:"canManageUsers"`
	LastLogin      string `json:"lastLogin"`
}

func (a *Admin) Base() *UserBase { return &a.UserBase }
func (a *Admin) Role() UserRole  { return RoleAdmin }

// Tutor 导师账号
// swagger:model Tutor
type Tutor struct {
	UserBase
	Specializations   []string       `json:"specializations"` // 可辅导的AI模型/系统
	DomainExpertise   []string       `json:"domainExpertise"` // 领域专长
	Qualification     string         `json:"qualification"`
	ExperienceYears   int            `json:"experienceYears"`
	ModelExperience   map[string]int `json:"modelExperience"` // 模型 -> 经验等级(1-5)
	HourlyRate        float64        `json:"hourlyRate"`
	SessionsCompleted int            `json:"sessionsCompleted"`
	AverageRating     float64        `json:"averageRating"`
}

func NewTutor(id int, username, password, firstName, lastName, email, phone string,
	specializations, domainExpertise []string, qualification string,
	experienceYears int, hourlyRate float64) *Tutor {
	return &Tutor{
		UserBase: UserBase{
			ID: id, Username: username, Password: password,
			FirstName: firstName, LastName: lastName, Email: email, Phone: phone,
		},
		Specializations: specializations,
		DomainExpertise: domainExpertise,
		Qualification:   qualification,
		ExperienceYears: experienceYears,
		ModelExperience: make(map[string]int),
		HourlyRate:      hourlyRate,
	}
}

func (t *Tutor) Base() *UserBase { return &t.UserBase }
func (t *Tutor) Role() UserRole  { return RoleTutor }

func (t *Tutor) AddSpecialization(aiModel string) {
	t.Specializations = append(t.Specializations, aiModel)
}

func (t *Tutor) RemoveSpecialization(aiModel string) {
	t.Specializations = removeString(t.Specializations, aiModel)
}

func (t *Tutor) HasSpecialization(aiModel string) bool {
	return containsString(t.Specializations, aiModel)
}

func (t *Tutor) AddDomainExpertise(domain string) {
	t.DomainExpertise = append(t.DomainExpertise, domain)
}

func (t *Tutor) RemoveDomainExpertise(domain string) {
	t.DomainExpertise = removeString(t.DomainExpertise, domain)
}

func (t *Tutor) HasDomainExpertise(domain string) bool {
	return containsString(t.DomainExpertise, domain)
}

// SetModelExperience 经验等级限定在 1-5，越界写入被忽略
func (t *Tutor) SetModelExperience(aiModel string, level int) {
	if level >= 1 && level <= 5 {
		if t.ModelExperience == nil {
			t.ModelExperience = make(map[string]int)
		}
		t.ModelExperience[aiModel] = level
	}
}

func (t *Tutor) GetModelExperience(aiModel string) int {
	return t.ModelExperience[aiModel]
}

func (t *Tutor) IncrementSessionsCompleted() {
	t.SessionsCompleted++
}

// UpdateRating 以完成次数为权重的滚动平均
func (t *Tutor) UpdateRating(newRating float64) {
	if t.SessionsCompleted == 0 {
		t.AverageRating = newRating
	} else {
		t.AverageRating = (t.AverageRating*float64(t.SessionsCompleted) + newRating) / float64(t.SessionsCompleted+1)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
