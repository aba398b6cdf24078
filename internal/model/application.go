package model

import "time"

type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
	ApplicationCompleted   ApplicationStatus = "completed"
)

// Application 学生对项目的申请，携带自身的状态机
// swagger:model Application
type Application struct {
	BaseModel
	ProjectID   uint              `gorm:"index;not null" json:"projectId"`
	StudentID   uint              `gorm:"index;not null" json:"studentId"`
	Status      ApplicationStatus `gorm:"size:20;default:'submitted';index" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter"`
	AppliedAt   time.Time         `json:"appliedAt"`

	ReviewedBy  *uint      `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewNotes string     `gorm:"type:text" json:"reviewNotes,omitempty"`

	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CompletionFeedback string     `gorm:"type:text" json:"completionFeedback,omitempty"`
	DeliverableURL     string     `gorm:"size:500" json:"deliverableUrl,omitempty"`
	PaymentReleased    bool       `gorm:"default:false" json:"paymentReleased"`

	Project  Project                     `gorm:"foreignKey:ProjectID" json:"-"`
	Progress []ApplicationModuleProgress `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// Decided reports whether the company has issued a terminal review decision.
func (a *Application) Decided() bool {
	return a.Status == ApplicationAccepted || a.Status == ApplicationRejected
}
