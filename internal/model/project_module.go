package model

// ProjectModule 项目中的一个课程/执行单元，按 OrderIndex 排序
// Invariant: per project the OrderIndex values form a dense 1..N sequence.
// swagger:model ProjectModule
type ProjectModule struct {
	BaseModel
	ProjectID         uint   `gorm:"index;not null" json:"projectId"`
	Title             string `gorm:"size:255;not null" json:"title"`
	Description       string `gorm:"type:text" json:"description"`
	EstimatedDuration string `gorm:"size:100" json:"estimatedDuration"`
	OrderIndex        int    `gorm:"not null;index" json:"orderIndex"` // 1-based
}

func (ProjectModule) TableName() string {
	return "project_modules"
}
