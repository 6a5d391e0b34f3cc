package repository

import (
	"encoding/json"

	"ai_tutor_crm_backend/internal/model"
	"ai_tutor_crm_backend/internal/util"
)

// userRecord 账号集合是异构的（管理员+导师），落盘时带角色标签。
// 密码在API序列化里被排除，落盘时单独携带。
type userRecord struct {
	Role     model.UserRole `json:"role"`
	Password string         `json:"password,omitempty"`
	Admin    *model.Admin   `json:"admin,omitempty"`
	Tutor    *model.Tutor   `json:"tutor,omitempty"`
}

// NewUserFileStore 账号记录 JSON-lines 存储
func NewUserFileStore(path string) *FileStore[model.User] {
	return NewFileStore(path, encodeUser, decodeUser)
}

func encodeUser(u model.User) (string, error) {
	rec := userRecord{Role: u.Role(), Password: u.Base().Password}
	switch v := u.(type) {
	case *model.Admin:
		rec.Admin = v
	case *model.Tutor:
		rec.Tutor = v
	default:
		return "", util.NewFileError("unknown user role: " + string(u.Role()))
	}
	b, err := json.Marshal(rec)
	return string(b), err
}

func decodeUser(line string) (model.User, error) {
	var rec userRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return nil, util.NewFileError("invalid user record: " + err.Error())
	}

	switch rec.Role {
	case model.RoleAdmin:
		if rec.Admin == nil {
			return nil, util.NewFileError("admin record missing payload")
		}
		rec.Admin.Password = rec.Password
		return rec.Admin, nil
	case model.RoleTutor:
		if rec.Tutor == nil {
			return nil, util.NewFileError("tutor record missing payload")
		}
		rec.Tutor.Password = rec.Password
		return rec.Tutor, nil
	default:
		return nil, util.NewFileError("unknown user role: " + string(rec.Role))
	}
}
