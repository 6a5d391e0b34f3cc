package controller

import (
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TutorController struct {
	TutorService *service.TutorService
}

func NewTutorController(tutorService *service.TutorService) *TutorController {
	return &TutorController{TutorService: tutorService}
}

// swagger:model CreateTutorRequest
type CreateTutorRequest struct {
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

// CreateTutor godoc
// @Summary 新增导师
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   body body CreateTutorRequest true "导师信息"
// @Success 201 {object} util.Response{data=model.Tutor} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tutors [post]
func (c *TutorController) CreateTutor(ctx *gin.Context) {
	var req CreateTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tutor := model.NewTutor(0, req.Username, req.Password, req.FirstName, req.LastName,
		req.Email, req.Phone, req.Specializations, req.DomainExpertise,
		req.Qualification, req.ExperienceYears, req.HourlyRate)
	c.TutorService.AddTutor(tutor)

	util.Created(ctx, tutor)
}

// ListTutors godoc
// @Summary 导师列表
// @Description 支持 specialization/domain/minExperience 过滤
// @Tags 导师
// @Produce  json
// @Param   specialization query string false "按可辅导模型过滤"
// @Param   domain query string false "按领域专长过滤"
// @Param   minExperience query int false "最低从业年限"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/tutors [get]
func (c *TutorController) ListTutors(ctx *gin.Context) {
	if spec := ctx.Query("specialization"); spec != "" {
		util.Success(ctx, c.TutorService.GetTutorsBySpecialization(spec))
		return
	}
	if domain := ctx.Query("domain"); domain != "" {
		util.Success(ctx, c.TutorService.GetTutorsByDomain(domain))
		return
	}
	if minYears := queryInt(ctx, "minExperience", 0); minYears > 0 {
		util.Success(ctx, c.TutorService.GetTutorsByExperience(minYears))
		return
	}
	util.Success(ctx, c.TutorService.GetAllTutors())
}

// GetTutor godoc
// @Summary 导师详情
// @Tags 导师
// @Produce  json
// @Param   id path int true "导师ID"
// @Success 200 {object} util.Response{data=model.Tutor} "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id} [get]
func (c *TutorController) GetTutor(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	tutor := c.TutorService.GetTutorByID(id)
	if tutor == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, tutor)
}

// DeleteTutor godoc
// @Summary 删除导师
// @Tags 导师
// @Produce  json
// @Param   id path int true "导师ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id} [delete]
func (c *TutorController) DeleteTutor(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.TutorService.RemoveTutor(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model TutorSpecializationRequest
type TutorSpecializationRequest struct {
	AIModel string `json:"aiModel" binding:"required"`
}

// AddSpecialization godoc
// @Summary 为导师添加可辅导模型
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   body body TutorSpecializationRequest true "模型名称"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id}/specializations [post]
func (c *TutorController) AddSpecialization(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TutorSpecializationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.TutorService.AddTutorSpecialization(id, req.AIModel) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// RemoveSpecialization godoc
// @Summary 移除导师的可辅导模型
// @Tags 导师
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   model query string true "模型名称"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id}/specializations [delete]
func (c *TutorController) RemoveSpecialization(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.TutorService.RemoveTutorSpecialization(id, ctx.Query("model")) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model TutorExperienceRequest
type TutorExperienceRequest struct {
	AIModel         string `json:"aiModel" binding:"required"`
	ExperienceLevel int    `json:"experienceLevel" binding:"required"`
}

// UpdateModelExperience godoc
// @Summary 更新导师对某模型的经验等级
// @Description 等级超出1-5时由实体忽略
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   body body TutorExperienceRequest true "经验信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id}/experience [put]
func (c *TutorController) UpdateModelExperience(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TutorExperienceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.TutorService.UpdateTutorModelExperience(id, req.AIModel, req.ExperienceLevel) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model TutorRatingRequest
type TutorRatingRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// RateTutor godoc
// @Summary 为导师打分
// @Description 新评分并入运行均值
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   body body TutorRatingRequest true "评分"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id}/rating [put]
func (c *TutorController) RateTutor(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TutorRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.TutorService.UpdateTutorRating(id, req.Rating) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"averageRating": c.TutorService.GetTutorAverageRating(id)})
}

// swagger:model TutorRateRequest
type TutorRateRequest struct {
	HourlyRate float64 `json:"hourlyRate" binding:"required"`
}

// UpdateRate godoc
// @Summary 更新导师时薪
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   body body TutorRateRequest true "时薪"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/tutors/{id}/rate [put]
func (c *TutorController) UpdateRate(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TutorRateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.TutorService.UpdateTutorRate(id, req.HourlyRate) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// TutorAnalytics godoc
// @Summary 导师分析汇总
// @Tags 导师
// @Produce  json
// @Param   top query int false "排行数量" default(5)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/tutors/analytics [get]
func (c *TutorController) TutorAnalytics(ctx *gin.Context) {
	top := queryInt(ctx, "top", 5)
	util.Success(ctx, gin.H{
		"popularSpecializations": c.TutorService.GetPopularSpecializations(),
		"topRated":               c.TutorService.GetTopRatedTutors(top),
		"mostExperienced":        c.TutorService.GetMostExperiencedTutors(top),
	})
}

// swagger:model TutorMatchRequest
type TutorMatchRequest struct {
	ClientID int      `json:"clientId" binding:"required"`
	AIModels []string `json:"aiModels"`
	AIModel  string   `json:"aiModel"`
}

// MatchTutors godoc
// @Summary 为客户匹配导师
// @Description 传 aiModels 返回候选列表，传 aiModel 返回评分最高的单个导师
// @Tags 导师
// @Accept  json
// @Produce  json
// @Param   body body TutorMatchRequest true "匹配条件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "无匹配导师"
// @Router /api/tutors/match [post]
func (c *TutorController) MatchTutors(ctx *gin.Context) {
	var req TutorMatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.AIModel != "" {
		best := c.TutorService.GetBestTutorMatch(req.ClientID, req.AIModel)
		if best == nil {
			util.NotFound(ctx)
			return
		}
		util.Success(ctx, best)
		return
	}

	util.Success(ctx, c.TutorService.FindMatchingTutorsForClient(req.ClientID, req.AIModels))
}
