package controller

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/service"
	"ai_tutor_crm_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MaterialController struct {
	MaterialService *service.LearningMaterialService
	ClientService   *service.ClientService
	StorageService  *service.StorageService
	Logger          *zap.Logger
}

func NewMaterialController(materialService *service.LearningMaterialService, clientService *service.ClientService,
	storageService *service.StorageService, logger *zap.Logger) *MaterialController {
	return &MaterialController{
		MaterialService: materialService,
		ClientService:   clientService,
		StorageService:  storageService,
		Logger:          logger,
	}
}

// swagger:model CreateMaterialRequest
type CreateMaterialRequest struct {
	Title                string   `json:"title" binding:"required"`
	Description          string   `json:"description"`
	Type                 string   `json:"type" binding:"required"`
	Format               string   `json:"format" binding:"required"`
	Author               string   `json:"author"`
	AIModelIDs           []int    `json:"aiModelIds"`
	Tags                 []string `json:"tags"`
	DifficultyLevel      int      `json:"difficultyLevel"`
	URL                  string   `json:"url"`
	EstimatedTimeMinutes int      `json:"estimatedTimeMinutes"`
}

// CreateMaterial godoc
// @Summary 新增学习资料
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   body body CreateMaterialRequest true "资料信息"
// @Success 201 {object} util.Response{data=model.LearningMaterial} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	var req CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m := model.NewLearningMaterial(0, req.Title, req.Description, req.Type, req.Format, req.Author)
	m.AIModelIDs = req.AIModelIDs
	m.URL = req.URL
	m.EstimatedTimeMinutes = req.EstimatedTimeMinutes
	m.SetDifficultyLevel(req.DifficultyLevel)
	for _, tag := range req.Tags {
		m.AddTag(tag)
	}
	c.MaterialService.AddMaterial(m)

	util.Created(ctx, m)
}

// swagger:model UploadMaterialRequest
type UploadMaterialRequest struct {
	Title           string `form:"title" binding:"required"`
	Description     string `form:"description"`
	Type            string `form:"type" binding:"required"`
	Author          string `form:"author"`
	DifficultyLevel int    `form:"difficultyLevel"`
}

// UploadMaterial godoc
// @Summary 上传学习资料文件
// @Description 上传文件并登记资料，MP4视频会自动探测时长
// @Tags 学习资料
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   title formData string true "资料标题"
// @Param   description formData string false "资料描述"
// @Param   type formData string true "资料类型"
// @Param   author formData string false "作者"
// @Param   difficultyLevel formData int false "难度 1-5"
// @Param   file formData file true "资料文件"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/materials/upload [post]
func (c *MaterialController) UploadMaterial(ctx *gin.Context) {
	var req UploadMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		c.Logger.Error("Material upload failed", zap.String("filename", filename), zap.Error(err))
		util.InternalServerError(ctx)
		return
	}

	format := strings.ToUpper(strings.TrimPrefix(ext, "."))
	m := model.NewLearningMaterial(0, req.Title, req.Description, req.Type, format, req.Author)
	m.URL = url
	m.SetDifficultyLevel(req.DifficultyLevel)

	// 本地存储的视频探测真实时长作为预计学习时间
	if ext == ".mp4" {
		localPath := filepath.Join(os.TempDir(), filename)
		if err := ctx.SaveUploadedFile(file, localPath); err == nil {
			if info, err := util.GetVideoInfo(localPath); err == nil {
				m.EstimatedTimeMinutes = int(math.Ceil(info.Duration / 60))
			}
			os.Remove(localPath)
		}
	}

	c.MaterialService.AddMaterial(m)
	util.Created(ctx, gin.H{"id": m.ID, "url": url})
}

// ListMaterials godoc
// @Summary 学习资料列表
// @Description 支持 type/format/author/difficulty/title/tag/modelId 过滤
// @Tags 学习资料
// @Produce  json
// @Param   type query string false "按类型过滤"
// @Param   format query string false "按格式过滤"
// @Param   author query string false "按作者过滤"
// @Param   difficulty query int false "按难度过滤"
// @Param   title query string false "按标题模糊查询"
// @Param   tag query string false "按标签过滤"
// @Param   modelId query int false "按关联AI模型过滤"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	if t := ctx.Query("type"); t != "" {
		util.Success(ctx, c.MaterialService.GetMaterialsByType(t))
		return
	}
	if f := ctx.Query("format"); f != "" {
		util.Success(ctx, c.MaterialService.GetMaterialsByFormat(f))
		return
	}
	if a := ctx.Query("author"); a != "" {
		util.Success(ctx, c.MaterialService.GetMaterialsByAuthor(a))
		return
	}
	if d := queryInt(ctx, "difficulty", 0); d > 0 {
		util.Success(ctx, c.MaterialService.GetMaterialsByDifficulty(d))
		return
	}
	if title := ctx.Query("title"); title != "" {
		util.Success(ctx, c.MaterialService.SearchMaterialsByTitle(title))
		return
	}
	if tag := ctx.Query("tag"); tag != "" {
		util.Success(ctx, c.MaterialService.SearchMaterialsByTag(tag))
		return
	}
	if modelID := queryInt(ctx, "modelId", 0); modelID > 0 {
		util.Success(ctx, c.MaterialService.GetMaterialsForAIModel(modelID))
		return
	}
	util.Success(ctx, c.MaterialService.GetAllMaterials())
}

// GetMaterial godoc
// @Summary 学习资料详情
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response{data=model.LearningMaterial} "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id} [get]
func (c *MaterialController) GetMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	m := c.MaterialService.GetMaterialByID(id)
	if m == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, m)
}

// swagger:model UpdateMaterialRequest
type UpdateMaterialRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	Format      string `json:"format" binding:"required"`
	Author      string `json:"author"`
}

// UpdateMaterial godoc
// @Summary 修改学习资料
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   id path int true "资料ID"
// @Param   body body UpdateMaterialRequest true "资料信息"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id} [put]
func (c *MaterialController) UpdateMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req UpdateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.MaterialService.UpdateMaterial(id, req.Title, req.Description, req.Type, req.Format, req.Author) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// DeleteMaterial godoc
// @Summary 删除学习资料
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.MaterialService.RemoveMaterial(id) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model MaterialTagRequest
type MaterialTagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// AddTag godoc
// @Summary 为资料添加标签
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   id path int true "资料ID"
// @Param   body body MaterialTagRequest true "标签"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/tags [post]
func (c *MaterialController) AddTag(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req MaterialTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.MaterialService.AddMaterialTag(id, req.Tag) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// RemoveTag godoc
// @Summary 移除资料标签
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Param   tag query string true "标签"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/tags [delete]
func (c *MaterialController) RemoveTag(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if !c.MaterialService.RemoveMaterialTag(id, ctx.Query("tag")) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// ListTags godoc
// @Summary 全部标签
// @Tags 学习资料
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials/tags [get]
func (c *MaterialController) ListTags(ctx *gin.Context) {
	util.Success(ctx, c.MaterialService.GetAllTags())
}

// swagger:model MaterialModelLinkRequest
type MaterialModelLinkRequest struct {
	AIModelID int `json:"aiModelId" binding:"required"`
}

// LinkModel godoc
// @Summary 关联资料与AI模型
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   id path int true "资料ID"
// @Param   body body MaterialModelLinkRequest true "模型ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/models [post]
func (c *MaterialController) LinkModel(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req MaterialModelLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.MaterialService.AddMaterialAIModel(id, req.AIModelID) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"id": id})
}

// swagger:model MaterialRatingRequest
type MaterialRatingRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// RateMaterial godoc
// @Summary 为资料打分
// @Description 新评分并入运行均值，同时累计使用次数
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   id path int true "资料ID"
// @Param   body body MaterialRatingRequest true "评分"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "资料不存在"
// @Router /api/materials/{id}/rating [put]
func (c *MaterialController) RateMaterial(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req MaterialRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if !c.MaterialService.UpdateMaterialRating(id, req.Rating) {
		util.NotFound(ctx)
		return
	}
	c.MaterialService.IncrementMaterialUsage(id)
	util.Success(ctx, gin.H{"rating": c.MaterialService.GetMaterialRating(id)})
}

// MaterialAnalytics godoc
// @Summary 学习资料分析汇总
// @Tags 学习资料
// @Produce  json
// @Param   top query int false "排行数量" default(5)
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials/analytics [get]
func (c *MaterialController) MaterialAnalytics(ctx *gin.Context) {
	top := queryInt(ctx, "top", 5)
	util.Success(ctx, gin.H{
		"mostUsed":         c.MaterialService.GetMostUsedMaterials(top),
		"topRated":         c.MaterialService.GetTopRatedMaterials(top),
		"typeDistribution": c.MaterialService.GetMaterialTypeDistribution(),
	})
}

// RelatedMaterials godoc
// @Summary 相关学习资料
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials/{id}/related [get]
func (c *MaterialController) RelatedMaterials(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.MaterialService.GetRelatedMaterials(id))
}

// LearningPathMaterials godoc
// @Summary 某模型按客户水平的资料学习路径
// @Description 结合客户当前掌握程度筛选进阶资料，按难度升序
// @Tags 学习资料
// @Produce  json
// @Param   modelId query int true "AI模型ID"
// @Param   clientId query int true "客户ID"
// @Param   model query string false "用于查客户水平的模型名称"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials/learning-path [get]
func (c *MaterialController) LearningPathMaterials(ctx *gin.Context) {
	modelID := queryInt(ctx, "modelId", 0)
	clientID := queryInt(ctx, "clientId", 0)
	if modelID == 0 || clientID == 0 {
		util.BadRequest(ctx, "modelId and clientId are required")
		return
	}

	proficiency := 0
	if name := ctx.Query("model"); name != "" {
		proficiency = c.ClientService.GetClientProficiencies(clientID)[name]
	}

	util.Success(ctx, c.MaterialService.GetLearningPathMaterials(modelID, proficiency))
}

// RecommendedMaterials godoc
// @Summary 为客户推荐资料
// @Tags 学习资料
// @Produce  json
// @Param   clientId query int true "客户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/materials/recommended [get]
func (c *MaterialController) RecommendedMaterials(ctx *gin.Context) {
	clientID := queryInt(ctx, "clientId", 0)
	util.Success(ctx, c.MaterialService.GetRecommendedMaterials(clientID))
}
