package controller

import (
	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"
	"ai_tutor_crm_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionController struct {
	SessionService *service.SessionService
	ClientService  *service.ClientService
	TutorService   *service.TutorService
	Logger         *zap.Logger
}

func NewSessionController(sessionService *service.SessionService, clientService *service.ClientService,
	tutorService *service.TutorService, logger *zap.Logger) *SessionController {
	return &SessionController{
		SessionService: sessionService,
		ClientService:  clientService,
		TutorService:   tutorService,
		Logger:         logger,
	}
}

// swagger:model ScheduleSessionRequest
type ScheduleSessionRequest struct {
	ClientID        int     `json:"clientId" binding:"required"`
	TutorID         int     `json:"tutorId" binding:"required"`
	AIModelIDs      []int   `json:"aiModelIds"`
	SessionDate     string  `json:"sessionDate" binding:"required"`
	StartTime       string  `json:"startTime" binding:"required"`
	DurationMinutes int     `json:"durationMinutes" binding:"required"`
	SessionCost     float64 `json:"sessionCost"`
	IsRemote        bool    `json:"isRemote"`
	Platform        string  `json:"platform"`
}

// ScheduleSession godoc
// @Summary 预约辅导会话
// @Description 日期/时间非法或导师时段冲突时拒绝
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   body body ScheduleSessionRequest true "会话信息"
// @Success 201 {object} util.Response{data=model.TutoringSession} "创建成功"
// @Failure 400 {object} util.Response "校验失败或时段冲突"
// @Router /api/sessions [post]
func (c *SessionController) ScheduleSession(ctx *gin.Context) {
	var req ScheduleSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := model.NewTutoringSession(0, req.ClientID, req.TutorID, req.AIModelIDs,
		req.SessionDate, req.StartTime, req.DurationMinutes, req.IsRemote, req.Platform)
	session.SessionCost = req.SessionCost

	if err := c.SessionService.ScheduleSession(session); err != nil {
		if util.IsKind(err, util.KindSession) {
			util.Error(ctx, 400, err.Error())
			return
		}
		util.HandleServiceError(ctx, c.Logger, err)
		return
	}
	monitoring.SessionsScheduled.Inc()

	util.Created(ctx, session)
}

// ListSessions godoc
// @Summary 会话列表
// @Description 支持 clientId/tutorId/date/modelId/status 过滤
// @Tags 会话
// @Produce  json
// @Param   clientId query int false "按客户过滤"
// @Param   tutorId query int false "按导师过滤"
// @Param   date query string false "按日期过滤 YYYY-MM-DD"
// @Param   modelId query int false "按AI模型过滤"
// @Param   status query string false "upcoming 或 completed"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	if clientID := queryInt(ctx, "clientId", 0); clientID > 0 {
		util.Success(ctx, c.SessionService.GetClientSessions(clientID))
		return
	}
	if tutorID := queryInt(ctx, "tutorId", 0); tutorID > 0 {
		util.Success(ctx, c.SessionService.GetTutorSessions(tutorID))
		return
	}
	if date := ctx.Query("date"); date != "" {
		util.Success(ctx, c.SessionService.GetSessionsByDate(date))
		return
	}
	if modelID := queryInt(ctx, "modelId", 0); modelID > 0 {
		util.Success(ctx, c.SessionService.GetSessionsByAIModel(modelID))
		return
	}
	switch ctx.Query("status") {
	case "upcoming":
		util.Success(ctx, c.SessionService.GetUpcomingSessions())
	case "completed":
		util.Success(ctx, c.SessionService.GetCompletedSessions())
	default:
		util.Success(ctx, c.SessionService.GetAllSessions())
	}
}

// GetSession godoc
// @Summary 会话详情
// @Tags 会话
// @Produce  json
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=model.TutoringSession} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	session := c.SessionService.GetSessionByID(id)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

// swagger:model RescheduleRequest
type RescheduleRequest struct {
	SessionDate     string `json:"sessionDate" binding:"required"`
	StartTime       string `json:"startTime" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
}

// RescheduleSession godoc
// @Summary 改期会话
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body RescheduleRequest true "新的时间安排"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "校验失败"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id} [put]
func (c *SessionController) RescheduleSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	found, err := c.SessionService.UpdateSessionDetails(id, req.SessionDate, req.StartTime, req.DurationMinutes)
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

// swagger:model CancelSessionRequest
type CancelSessionRequest struct {
	Reason string `json:"reason"`
}

// CancelSession godoc
// @Summary 取消会话
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body CancelSessionRequest true "取消原因"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/cancel [post]
func (c *SessionController) CancelSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req CancelSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.SessionService.CancelSession(id, req.Reason) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model CompleteSessionRequest
type CompleteSessionRequest struct {
	ClientRating float64 `json:"clientRating" binding:"required"`
	Notes        string  `json:"notes"`
	SkillsGained string  `json:"skillsGained"`
}

// CompleteSession godoc
// @Summary 完成会话
// @Description 标记完成并联动更新客户与导师的会话统计
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body CompleteSessionRequest true "完成信息"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "会话不在排期状态"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/complete [post]
func (c *SessionController) CompleteSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session := c.SessionService.GetSessionByID(id)
	if session == nil {
		util.NotFound(ctx)
		return
	}
	if session.Status != model.SessionScheduled {
		util.BadRequest(ctx, "only scheduled sessions can be completed")
		return
	}

	if !c.SessionService.CompleteSession(id, req.ClientRating, req.Notes, req.SkillsGained) {
		util.NotFound(ctx)
		return
	}
	monitoring.SessionsCompleted.Inc()

	// 会话完成后联动客户和导师的累计数据
	c.ClientService.UpdateClientSessionInfo(session.ClientID, session.SessionDate)
	c.ClientService.UpdateClientBudget(session.ClientID, session.SessionCost, false)
	c.TutorService.IncrementTutorSessions(session.TutorID)
	c.TutorService.UpdateTutorRating(session.TutorID, req.ClientRating)

	util.Success(ctx, gin.H{"id": id})
}

// swagger:model SessionTopicRequest
type SessionTopicRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// AddTopic godoc
// @Summary 为会话添加主题
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body SessionTopicRequest true "主题"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/topics [post]
func (c *SessionController) AddTopic(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req SessionTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.SessionService.AddSessionTopic(id, req.Topic) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model SessionObjectivesRequest
type SessionObjectivesRequest struct {
	Objectives string `json:"objectives" binding:"required"`
}

// SetObjectives godoc
// @Summary 设置会话学习目标
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body SessionObjectivesRequest true "学习目标"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/objectives [put]
func (c *SessionController) SetObjectives(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req SessionObjectivesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.SessionService.SetSessionObjectives(id, req.Objectives) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model SessionHomeworkRequest
type SessionHomeworkRequest struct {
	Homework string `json:"homework" binding:"required"`
}

// AssignHomework godoc
// @Summary 布置会话作业
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body SessionHomeworkRequest true "作业内容"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/homework [put]
func (c *SessionController) AssignHomework(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req SessionHomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.SessionService.AssignSessionHomework(id, req.Homework) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model SessionPaymentRequest
type SessionPaymentRequest struct {
	Cost   float64 `json:"cost"`
	Status string  `json:"status" binding:"required"`
}

// UpdatePayment godoc
// @Summary 更新会话费用与支付状态
// @Tags 会话
// @Accept  json
// @Produce  json
// @Param   id path int true "会话ID"
// @Param   body body SessionPaymentRequest true "支付信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/payment [put]
func (c *SessionController) UpdatePayment(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req SessionPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.SessionService.UpdateSessionPayment(id, req.Cost, req.Status) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// MarkPaid godoc
// @Summary 标记会话已支付
// @Tags 会话
// @Produce  json
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/paid [post]
func (c *SessionController) MarkPaid(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.SessionService.MarkSessionAsPaid(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// UnpaidSessions godoc
// @Summary 未支付会话列表
// @Tags 会话
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/sessions/unpaid [get]
func (c *SessionController) UnpaidSessions(ctx *gin.Context) {
	util.Success(ctx, c.SessionService.GetUnpaidSessions())
}

// SessionAnalytics godoc
// @Summary 会话分析汇总
// @Tags 会话
// @Produce  json
// @Param   start query string false "收入统计起始日期"
// @Param   end query string false "收入统计结束日期"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/sessions/analytics [get]
func (c *SessionController) SessionAnalytics(ctx *gin.Context) {
	data := gin.H{
		"averageRating":   c.SessionService.GetAverageSessionRating(),
		"averageDuration": c.SessionService.GetAverageSessionDuration(),
		"popularTopics":   c.SessionService.GetPopularSessionTopics(),
		"sessionsByModel": c.SessionService.GetSessionsByAIModelCount(),
	}
	start, end := ctx.Query("start"), ctx.Query("end")
	if start != "" && end != "" {
		data["totalRevenue"] = c.SessionService.GetTotalRevenue(start, end)
	}
	util.Success(ctx, data)
}
