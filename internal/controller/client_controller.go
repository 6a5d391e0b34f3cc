package controller

import (
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClientController struct {
	ClientService *service.ClientService
	Logger        *zap.Logger
}

func NewClientController(clientService *service.ClientService, logger *zap.Logger) *ClientController {
	return &ClientController{ClientService: clientService, Logger: logger}
}

// swagger:model CreateClientRequest
type CreateClientRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Company   string `json:"company"`
	Position  string `json:"position"`
}

// CreateClient godoc
// @Summary 新增客户
// @Description 邮箱或手机号格式非法时拒绝
// @Tags 客户
// @Accept  json
// @Produce  json
// @Param   body body CreateClientRequest true "客户信息"
// @Success 201 {object} util.Response{data=model.Client} "创建成功"
// @Failure 400 {object} util.Response "校验失败"
// @Router /api/clients [post]
func (c *ClientController) CreateClient(ctx *gin.Context) {
	var req CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	client := model.NewClient(0, req.FirstName, req.LastName, req.Email, req.Phone, req.Company, req.Position)
	if err := c.ClientService.AddClient(client); err != nil {
		util.HandleServiceError(ctx, c.Logger, err)
		return
	}

	util.Created(ctx, client)
}

// ListClients godoc
// @Summary 客户列表
// @Description 支持 name/company/model 查询过滤
// @Tags 客户
// @Produce  json
// @Param   name query string false "按姓名模糊查询"
// @Param   company query string false "按公司模糊查询"
// @Param   model query string false "按感兴趣的AI模型过滤"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/clients [get]
func (c *ClientController) ListClients(ctx *gin.Context) {
	if name := ctx.Query("name"); name != "" {
		util.Success(ctx, c.ClientService.SearchClientsByName(name))
		return
	}
	if company := ctx.Query("company"); company != "" {
		util.Success(ctx, c.ClientService.SearchClientsByCompany(company))
		return
	}
	if aiModel := ctx.Query("model"); aiModel != "" {
		util.Success(ctx, c.ClientService.GetClientsInterestedInModel(aiModel))
		return
	}
	util.Success(ctx, c.ClientService.GetAllClients())
}

// GetClient godoc
// @Summary 客户详情
// @Tags 客户
// @Produce  json
// @Param   id path int true "客户ID"
// @Success 200 {object} util.Response{data=model.Client} "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id} [get]
func (c *ClientController) GetClient(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	client := c.ClientService.GetClientByID(id)
	if client == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, client)
}

// UpdateClient godoc
// @Summary 修改客户信息
// @Tags 客户
// @Accept  json
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   body body CreateClientRequest true "客户信息"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "校验失败"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id} [put]
func (c *ClientController) UpdateClient(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	found, err := c.ClientService.UpdateClientDetails(id, req.FirstName, req.LastName, req.Email, req.Phone, req.Company, req.Position)
	if err != nil {
		util.HandleServiceError(ctx, c.Logger, err)
		return
	}
	if !found {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// DeleteClient godoc
// @Summary 删除客户
// @Tags 客户
// @Produce  json
// @Param   id path int true "客户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id} [delete]
func (c *ClientController) DeleteClient(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.ClientService.RemoveClient(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model ClientInterestRequest
type ClientInterestRequest struct {
	AIModel string `json:"aiModel" binding:"required"`
}

// AddInterest godoc
// @Summary 为客户添加感兴趣的AI模型
// @Tags 客户
// @Accept  json
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   body body ClientInterestRequest true "模型名称"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id}/interests [post]
func (c *ClientController) AddInterest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req ClientInterestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.ClientService.AddClientInterest(id, req.AIModel) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// RemoveInterest godoc
// @Summary 移除客户感兴趣的AI模型
// @Tags 客户
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   model query string true "模型名称"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id}/interests [delete]
func (c *ClientController) RemoveInterest(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.ClientService.RemoveClientInterest(id, ctx.Query("model")) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model ClientProgressRequest
type ClientProgressRequest struct {
	AIModel          string `json:"aiModel" binding:"required"`
	ProficiencyLevel int    `json:"proficiencyLevel" binding:"required"`
}

// UpdateProgress godoc
// @Summary 更新客户某模型的掌握程度
// @Description 等级超出1-5时由实体忽略，调用仍返回成功
// @Tags 客户
// @Accept  json
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   body body ClientProgressRequest true "进度信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id}/progress [put]
func (c *ClientController) UpdateProgress(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req ClientProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.ClientService.UpdateClientProgress(id, req.AIModel, req.ProficiencyLevel) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, c.ClientService.GetClientProficiencies(id))
}

// GetProficiencies godoc
// @Summary 客户各模型的掌握程度
// @Tags 客户
// @Produce  json
// @Param   id path int true "客户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/clients/{id}/proficiencies [get]
func (c *ClientController) GetProficiencies(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.ClientService.GetClientProficiencies(id))
}

// swagger:model ClientBudgetRequest
type ClientBudgetRequest struct {
	Amount     float64 `json:"amount" binding:"required"`
	IsAddition bool    `json:"isAddition"`
}

// UpdateBudget godoc
// @Summary 调整客户预算
// @Description 扣减超过余额时预算归零
// @Tags 客户
// @Accept  json
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   body body ClientBudgetRequest true "金额与方向"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/clients/{id}/budget [put]
func (c *ClientController) UpdateBudget(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req ClientBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.ClientService.UpdateClientBudget(id, req.Amount, req.IsAddition) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"budget": c.ClientService.GetClientBudget(id)})
}

// ClientAnalytics godoc
// @Summary 客户分析汇总
// @Description 热门模型需求、平均会话数、活跃客户排行
// @Tags 客户
// @Produce  json
// @Param   top query int false "排行数量" default(5)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/clients/analytics [get]
func (c *ClientController) ClientAnalytics(ctx *gin.Context) {
	top := queryInt(ctx, "top", 5)
	util.Success(ctx, gin.H{
		"popularModels":   c.ClientService.GetPopularAIModels(),
		"averageSessions": c.ClientService.GetAverageClientSessions(),
		"topClients":      c.ClientService.GetTopClients(top),
	})
}
