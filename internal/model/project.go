package model

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectPending   ProjectStatus = "pending"
	ProjectComplete  ProjectStatus = "complete"
	ProjectCancelled ProjectStatus = "cancelled"
	ProjectClosed    ProjectStatus = "closed"
)

// Project 企业发布的实习/项目岗位
// swagger:model Project
type Project struct {
	BaseModel
	CompanyID           uint          `gorm:"index;not null" json:"companyId"`
	CreatedBy           uint          `gorm:"index;not null" json:"createdBy"`
	Title               string        `gorm:"size:255;not null" json:"title"`
	Description         string        `gorm:"type:text" json:"description"`
	Location            string        `gorm:"size:150" json:"location"`
	Status              ProjectStatus `gorm:"size:20;default:'draft';index" json:"status"`
	MaxApplicants       int           `gorm:"default:0" json:"maxApplicants"` // 0 = unlimited
	ApplicationCount    int           `gorm:"default:0" json:"applicationCount"`
	ApplicationDeadline *time.Time    `json:"applicationDeadline,omitempty"`

	Modules []ProjectModule `gorm:"foreignKey:ProjectID" json:"modules,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// AcceptsApplications reports whether new applications may be submitted.
func (p *Project) AcceptsApplications() bool {
	return p.Status == ProjectActive
}
