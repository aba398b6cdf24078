package model

import "time"

// ApplicationModuleProgress 记录某申请下单个模块的完成状态。
// 取消完成时整行删除而不是置为 false，因此 "无行" 与 "未完成" 等价。
// No DeletedAt here: rows are removed outright so the unique index can be
// re-used when a module is completed again.
// swagger:model ApplicationModuleProgress
type ApplicationModuleProgress struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID   uint       `gorm:"index:idx_application_module,unique;not null" json:"applicationId"`
	ProjectModuleID uint       `gorm:"index:idx_application_module,unique;not null" json:"projectModuleId"`
	IsCompleted     bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (ApplicationModuleProgress) TableName() string {
	return "application_module_progress"
}
