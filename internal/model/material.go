package model

type MaterialType string

const (
	MaterialVideo    MaterialType = "video"
	MaterialAudio    MaterialType = "audio"
	MaterialDocument MaterialType = "document"
	MaterialOther    MaterialType = "other"
)

// Material 单个课程素材（视频/音频/文档）
// swagger:model Material
type Material struct {
	BaseModel
	CourseID    uint         `gorm:"index;not null" json:"courseId"`
	Title       string       `gorm:"size:300;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Type        MaterialType `gorm:"size:20;not null" json:"type"`
	FileID      string       `gorm:"size:300" json:"fileId"` // Telegram file_id
	FileURL     string       `gorm:"size:500" json:"fileUrl"`
	FileSize    int64        `gorm:"default:0" json:"fileSize"`
	Duration    int          `gorm:"default:0" json:"duration"` // 秒
	OrderIndex  int          `gorm:"default:0" json:"orderIndex"`
	IsFree      bool         `gorm:"default:true" json:"isFree"`
	XPReward    int          `gorm:"default:10" json:"xpReward"`

	ProgressRecords []Progress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Favorites       []Favorite `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notes           []Note     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Material) TableName() string {
	return "materials"
}
