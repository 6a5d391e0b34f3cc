package controller

import (
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportController struct {
	ReportService *service.ReportService
	Logger        *zap.Logger
}

func NewReportController(reportService *service.ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{ReportService: reportService, Logger: logger}
}

func (c *ReportController) deliver(ctx *gin.Context, content, reportType string) {
	if ctx.Query("save") == "true" {
		path, err := c.ReportService.SaveReportToFile(content, reportType)
		if err != nil {
			util.HandleServiceError(ctx, c.Logger, err)
			return
		}
		util.Success(ctx, gin.H{"report": content, "savedTo": path})
		return
	}
	util.Success(ctx, gin.H{"report": content})
}

// RevenueReport godoc
// @Summary 收入报表
// @Tags 报表
// @Produce  json
// @Param   start query string true "起始日期 YYYY-MM-DD"
// @Param   end query string true "结束日期 YYYY-MM-DD"
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "日期非法"
// @Router /api/reports/revenue [get]
func (c *ReportController) RevenueReport(ctx *gin.Context) {
	content, err := c.ReportService.GenerateRevenueReport(ctx.Query("start"), ctx.Query("end"))
	if err != nil {
		util.HandleServiceError(ctx, c.Logger, err)
		return
	}
	c.deliver(ctx, content, "revenue")
}

// ClientProgressReport godoc
// @Summary 客户进度报表
// @Tags 报表
// @Produce  json
// @Param   id path int true "客户ID"
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "客户不存在"
// @Router /api/reports/clients/{id} [get]
func (c *ReportController) ClientProgressReport(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	content, found := c.ReportService.GenerateClientProgressReport(id)
	if !found {
		util.NotFound(ctx)
		return
	}
	c.deliver(ctx, content, "client_progress")
}

// AllClientsReport godoc
// @Summary 全部客户报表
// @Tags 报表
// @Produce  json
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/reports/clients [get]
func (c *ReportController) AllClientsReport(ctx *gin.Context) {
	c.deliver(ctx, c.ReportService.GenerateAllClientsReport(), "all_clients")
}

// TutorPerformanceReport godoc
// @Summary 导师表现报表
// @Tags 报表
// @Produce  json
// @Param   id path int true "导师ID"
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "导师不存在"
// @Router /api/reports/tutors/{id} [get]
func (c *ReportController) TutorPerformanceReport(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	content, found := c.ReportService.GenerateTutorPerformanceReport(id)
	if !found {
		util.NotFound(ctx)
		return
	}
	c.deliver(ctx, content, "tutor_performance")
}

// SpecializationReport godoc
// @Summary 导师专长分布报表
// @Tags 报表
// @Produce  json
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/reports/specializations [get]
func (c *ReportController) SpecializationReport(ctx *gin.Context) {
	c.deliver(ctx, c.ReportService.GenerateTutorSpecializationReport(), "specializations")
}

// ModelDemandReport godoc
// @Summary AI模型供需报表
// @Tags 报表
// @Produce  json
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/reports/models [get]
func (c *ReportController) ModelDemandReport(ctx *gin.Context) {
	c.deliver(ctx, c.ReportService.GenerateAIModelDemandReport(), "model_demand")
}

// MonthlySummary godoc
// @Summary 月度财务汇总
// @Tags 报表
// @Produce  json
// @Param   month query int true "月份 1-12"
// @Param   year query int true "年份"
// @Param   save query bool false "是否落盘"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "月份非法"
// @Router /api/reports/monthly [get]
func (c *ReportController) MonthlySummary(ctx *gin.Context) {
	month := queryInt(ctx, "month", 0)
	year := queryInt(ctx, "year", 0)

	content, err := c.ReportService.GenerateMonthlyFinancialSummary(month, year)
	if err != nil {
		util.HandleServiceError(ctx, c.Logger, err)
		return
	}
	c.deliver(ctx, content, "monthly_summary")
}
