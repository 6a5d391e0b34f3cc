package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/util"
)

// NewClientFileStore 客户记录用竖线分隔的平面文件，一行一个客户
func NewClientFileStore(path string) *FileStore[*model.Client] {
	return NewFileStore(path, encodeClient, decodeClient)
}

// sanitizeField 记录和字段分隔符不允许混进字段内容
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	return strings.ReplaceAll(s, "\n", " ")
}

func sanitizeItem(s string) string {
	return strings.ReplaceAll(sanitizeField(s), ",", ";")
}

func joinItems(items []string) string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = sanitizeItem(item)
	}
	return strings.Join(out, ",")
}

// encodeClient 熟练度按模型名排序，同一客户两次落盘字节一致
func encodeClient(c *model.Client) (string, error) {
	models := make([]string, 0, len(c.ModelProficiency))
	for m := range c.ModelProficiency {
		models = append(models, m)
	}
	sort.Strings(models)

	proficiencies := make([]string, 0, len(models))
	for _, m := range models {
		proficiencies = append(proficiencies, sanitizeItem(m)+":"+strconv.Itoa(c.ModelProficiency[m]))
	}

	fields := []string{
		strconv.Itoa(c.ID),
		sanitizeField(c.FirstName),
		sanitizeField(c.LastName),
		sanitizeField(c.Email),
		sanitizeField(c.Phone),
		sanitizeField(c.Company),
		sanitizeField(c.Position),
		joinItems(c.ModelsOfInterest),
		joinItems(c.LearningGoals),
		strings.Join(proficiencies, ","),
		sanitizeField(c.RegistrationDate),
		strconv.Itoa(c.SessionsCompleted),
		sanitizeField(c.LastSessionDate),
		strconv.FormatFloat(c.Budget, 'f', 2, 64),
	}
	return strings.Join(fields, "|"), nil
}

func decodeClient(line string) (*model.Client, error) {
	tokens := strings.Split(line, "|")
	if len(tokens) < 14 {
		return nil, util.NewFileError(fmt.Sprintf("invalid client record: expected 14 fields, got %d", len(tokens)))
	}

	id, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, util.NewFileError("invalid client id: " + tokens[0])
	}

	c := model.NewClient(id, tokens[1], tokens[2], tokens[3], tokens[4], tokens[5], tokens[6])

	if tokens[7] != "" {
		c.ModelsOfInterest = strings.Split(tokens[7], ",")
	}
	if tokens[8] != "" {
		c.LearningGoals = strings.Split(tokens[8], ",")
	}
	if tokens[9] != "" {
		for _, pair := range strings.Split(tokens[9], ",") {
			idx := strings.LastIndex(pair, ":")
			if idx <= 0 {
				continue
			}
			level, err := strconv.Atoi(pair[idx+1:])
			if err != nil {
				continue
			}
			c.SetModelProficiency(pair[:idx], level)
		}
	}

	c.RegistrationDate = tokens[10]
	if n, err := strconv.Atoi(tokens[11]); err == nil {
		c.SessionsCompleted = n
	}
	c.LastSessionDate = tokens[12]
	if b, err := strconv.ParseFloat(tokens[13], 64); err == nil {
		c.Budget = b
	}

	return c, nil
}
