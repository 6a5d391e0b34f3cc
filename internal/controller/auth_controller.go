package controller

import (
	"ai_tutor_crm_backend/internal/config"
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"
	"ai_tutor_crm_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Config      *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService: authService,
		Config:      cfg,
	}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户身份并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.AuthService.Login(req.Username, req.Password) {
		monitoring.LoginAttempts.WithLabelValues("failure").Inc()
		util.Unauthorized(ctx)
		return
	}
	monitoring.LoginAttempts.WithLabelValues("success").Inc()

	user := c.AuthService.GetUserByUsername(req.Username)
	token, err := util.GenerateJWT(user, c.Config.JWT.Secret, c.Config.JWT.ExpireTime)
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.Base().ID,
			"username": user.Base().Username,
			"fullName": user.Base().FullName(),
			"role":     user.Role(),
		},
	})
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response "成功"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.AuthService.Logout()
	util.Success(ctx, gin.H{"message": "logged out"})
}

// swagger:model RegisterTutorRequest
type RegisterTutorRequest struct {
	Username        string   `json:"username" binding:"required"`
	Password        string   `json:"password" binding:"required,min=6"`
	FirstName       string   `json:"firstName" binding:"required"`
	LastName        string   `json:"lastName" binding:"required"`
	Email           string   `json:"email" binding:"required"`
	Phone           string   `json:"phone"`
	Specializations []string `json:"specializations"`
	DomainExpertise []string `json:"domainExpertise"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRate      float64  `json:"hourlyRate"`
}

// RegisterTutor godoc
// @Summary 注册新导师账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterTutorRequest true "导师注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/users/tutors [post]
func (c *AuthController) RegisterTutor(ctx *gin.Context) {
	var req RegisterTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tutor := model.NewTutor(0, req.Username, req.Password, req.FirstName, req.LastName,
		req.Email, req.Phone, req.Specializations, req.DomainExpertise,
		req.Qualification, req.ExperienceYears, req.HourlyRate)
	c.AuthService.Register(tutor)

	util.Created(ctx, gin.H{"id": tutor.ID})
}

// swagger:model RegisterAdminRequest
type RegisterAdminRequest struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required,min=6"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone"`
	AccessLevel    string `json:"accessLevel"`
	CanManageAI    bool   `json:"canManageAI"`
	CanManageUsers bool   `json:"canManageUsers"`
}

// RegisterAdmin godoc
// @Summary 注册新管理员账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterAdminRequest true "管理员注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/users/admins [post]
func (c *AuthController) RegisterAdmin(ctx *gin.Context) {
	var req RegisterAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	admin := &model.Admin{
		UserBase: model.UserBase{
			Username: req.Username, Password: req.Password,
			FirstName: req.FirstName, LastName: req.LastName,
			Email: req.Email, Phone: req.Phone,
		},
		AccessLevel:    req.AccessLevel,
		CanManageAI:    req.CanManageAI,
		CanManageUsers: req.CanManageUsers,
	}
	c.AuthService.Register(admin)

	util.Created(ctx, gin.H{"id": admin.ID})
}

// Me godoc
// @Summary 当前登录用户信息
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user := c.AuthService.GetUserByID(claims.UserID)
	if user == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	util.Success(ctx, c.AuthService.GetAllUsers())
}

// ListTutorAccounts godoc
// @Summary 导师账号列表
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/users/tutors [get]
func (c *AuthController) ListTutorAccounts(ctx *gin.Context) {
	util.Success(ctx, c.AuthService.GetAllTutors())
}

// ListAdmins godoc
// @Summary 管理员账号列表
// @Tags 用户
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/users/admins [get]
func (c *AuthController) ListAdmins(ctx *gin.Context) {
	util.Success(ctx, c.AuthService.GetAllAdmins())
}

// swagger:model UpdatePasswordRequest
type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UpdatePassword godoc
// @Summary 修改用户密码
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   id path int true "用户ID"
// @Param   body body UpdatePasswordRequest true "新密码"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id}/password [put]
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.AuthService.UpdateUserPassword(id, req.NewPassword) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
}

// UpdateUser godoc
// @Summary 修改用户基本信息
// @Tags 用户
// @Accept  json
// @Produce  json
// @Param   id path int true "用户ID"
// @Param   body body UpdateUserRequest true "用户信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [put]
func (c *AuthController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.AuthService.UpdateUserDetails(id, req.FirstName, req.LastName, req.Email, req.Phone) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// DeleteUser godoc
// @Summary 删除用户
// @Tags 用户
// @Produce  json
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [delete]
func (c *AuthController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.AuthService.DeleteUser(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
