package controller

import (
	"strconv"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIModelController struct {
	AIModelService *service.AIModelService
}

func NewAIModelController(aiModelService *service.AIModelService) *AIModelController {
	return &AIModelController{AIModelService: aiModelService}
}

// swagger:model CreateAIModelRequest
type CreateAIModelRequest struct {
	Name            string `json:"name" binding:"required"`
	Version         string `json:"version"`
	Developer       string `json:"developer" binding:"required"`
	Category        string `json:"category" binding:"required"`
	ReleaseDate     string `json:"releaseDate"`
	Description     string `json:"description"`
	ComplexityLevel int    `json:"complexityLevel"`
}

// CreateModel godoc
// @Summary 新增AI模型
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   body body CreateAIModelRequest true "模型信息"
// @Success 201 {object} util.Response{data=model.AIModel} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/models [post]
func (c *AIModelController) CreateModel(ctx *gin.Context) {
	var req CreateAIModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m := model.NewAIModel(0, req.Name, req.Version, req.Developer, req.Category,
		req.ReleaseDate, req.Description, req.ComplexityLevel)
	c.AIModelService.AddModel(m)

	util.Created(ctx, m)
}

// ListModels godoc
// @Summary AI模型列表
// @Description 支持 category/developer/complexity 过滤
// @Tags AI模型
// @Produce  json
// @Param   category query string false "按类别过滤"
// @Param   developer query string false "按开发方过滤"
// @Param   complexity query int false "按复杂度过滤"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/models [get]
func (c *AIModelController) ListModels(ctx *gin.Context) {
	if category := ctx.Query("category"); category != "" {
		util.Success(ctx, c.AIModelService.GetModelsByCategory(category))
		return
	}
	if developer := ctx.Query("developer"); developer != "" {
		util.Success(ctx, c.AIModelService.GetModelsByDeveloper(developer))
		return
	}
	if level := queryInt(ctx, "complexity", 0); level > 0 {
		util.Success(ctx, c.AIModelService.GetModelsByComplexity(level))
		return
	}
	util.Success(ctx, c.AIModelService.GetAllModels())
}

// GetModel godoc
// @Summary AI模型详情
// @Tags AI模型
// @Produce  json
// @Param   id path int true "模型ID"
// @Success 200 {object} util.Response{data=model.AIModel} "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id} [get]
func (c *AIModelController) GetModel(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	m := c.AIModelService.GetModelByID(id)
	if m == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, m)
}

// swagger:model UpdateAIModelRequest
type UpdateAIModelRequest struct {
	Name        string `json:"name" binding:"required"`
	Version     string `json:"version"`
	Developer   string `json:"developer" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
}

// UpdateModel godoc
// @Summary 修改AI模型基本信息
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   id path int true "模型ID"
// @Param   body body UpdateAIModelRequest true "模型信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id} [put]
func (c *AIModelController) UpdateModel(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req UpdateAIModelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.AIModelService.UpdateModel(id, req.Name, req.Version, req.Developer, req.Category, req.Description) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// DeleteModel godoc
// @Summary 删除AI模型
// @Tags AI模型
// @Produce  json
// @Param   id path int true "模型ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id} [delete]
func (c *AIModelController) DeleteModel(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.AIModelService.RemoveModel(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model ModelAttributeRequest
type ModelAttributeRequest struct {
	Value string `json:"value" binding:"required"`
}

// AddCapability godoc
// @Summary 为模型添加能力条目
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   id path int true "模型ID"
// @Param   body body ModelAttributeRequest true "能力描述"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id}/capabilities [post]
func (c *AIModelController) AddCapability(ctx *gin.Context) {
	c.attrUpdate(ctx, c.AIModelService.AddModelCapability)
}

// AddLimitation godoc
// @Summary 为模型添加局限条目
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   id path int true "模型ID"
// @Param   body body ModelAttributeRequest true "局限描述"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id}/limitations [post]
func (c *AIModelController) AddLimitation(ctx *gin.Context) {
	c.attrUpdate(ctx, c.AIModelService.AddModelLimitation)
}

// AddUseCase godoc
// @Summary 为模型添加应用场景
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   id path int true "模型ID"
// @Param   body body ModelAttributeRequest true "场景描述"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id}/use-cases [post]
func (c *AIModelController) AddUseCase(ctx *gin.Context) {
	c.attrUpdate(ctx, c.AIModelService.AddModelUseCase)
}

func (c *AIModelController) attrUpdate(ctx *gin.Context, fn func(int, string) bool) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req ModelAttributeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !fn(id, req.Value) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model ModelComplexityRequest
type ModelComplexityRequest struct {
	Level int `json:"level" binding:"required"`
}

// UpdateComplexity godoc
// @Summary 更新模型复杂度
// @Description 等级超出1-5时由实体忽略
// @Tags AI模型
// @Accept  json
// @Produce  json
// @Param   id path int true "模型ID"
// @Param   body body ModelComplexityRequest true "复杂度 1-5"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模型不存在"
// @Router /api/models/{id}/complexity [put]
func (c *AIModelController) UpdateComplexity(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req ModelComplexityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.AIModelService.UpdateModelComplexity(id, req.Level) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// PopularModels godoc
// @Summary 热门模型排行
// @Tags AI模型
// @Produce  json
// @Param   count query int false "返回数量" default(5)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/models/popular [get]
func (c *AIModelController) PopularModels(ctx *gin.Context) {
	count := queryInt(ctx, "count", 5)
	util.Success(ctx, c.AIModelService.GetMostPopularModels(count))
}

// ModelAnalytics godoc
// @Summary 模型目录分析
// @Tags AI模型
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/models/analytics [get]
func (c *AIModelController) ModelAnalytics(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"categoryCounts":    c.AIModelService.GetModelCategoryCounts(),
		"developerCounts":   c.AIModelService.GetDeveloperModelCounts(),
		"averageComplexity": c.AIModelService.GetAverageModelComplexity(),
	})
}

// LearningPath godoc
// @Summary 客户的模型学习路径
// @Description 按复杂度从低到高给出客户感兴趣的模型
// @Tags AI模型
// @Produce  json
// @Param   clientId path int true "客户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/models/learning-path/{clientId} [get]
func (c *AIModelController) LearningPath(ctx *gin.Context) {
	clientID, err := strconv.Atoi(ctx.Param("clientId"))
	if err != nil {
		util.BadRequest(ctx, "invalid client id")
		return
	}
	util.Success(ctx, c.AIModelService.GetRecommendedLearningPath(clientID))
}

// RelatedModels godoc
// @Summary 相关模型
// @Description 同类别的其他模型，以及前置/进阶模型
// @Tags AI模型
// @Produce  json
// @Param   id path int true "模型ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/models/{id}/related [get]
func (c *AIModelController) RelatedModels(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	util.Success(ctx, gin.H{
		"related":       c.AIModelService.GetRelatedModels(id),
		"prerequisites": c.AIModelService.GetPrerequisiteModels(id),
		"nextLevel":     c.AIModelService.GetNextLevelModels(id),
	})
}
