package model

import (
	"fmt"
	"strings"
	"time"

	baseModel "zkbugs/pkg/model"

	"gorm.io/datatypes"
)

const (
	DefaultImage      = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"
	DefaultCategory   = "uncategorized"
	DefaultAuditFirm  = "Independent Researcher"
	DefaultSourceName = "Independent Researcher"
)

// Severity 严重程度
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Difficulty 利用难度
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// ProtocolType 协议类型
type ProtocolType string

const (
	ProtocolZKEVM    ProtocolType = "ZKEVM"
	ProtocolZKRollup ProtocolType = "ZK-ROLLUP"
	ProtocolOther    ProtocolType = "OTHER"
)

// ParseSeverity 小写后校验；空值取默认 medium
func ParseSeverity(raw string) (Severity, error) {
	switch s := Severity(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SeverityMedium, nil
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s, nil
	default:
		return "", fmt.Errorf("invalid severity %q", raw)
	}
}

// ParseDifficulty 小写后校验；空值取默认 medium
func ParseDifficulty(raw string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return d, nil
	default:
		return "", fmt.Errorf("invalid difficulty %q", raw)
	}
}

// ParseProtocolType 大写后校验；空值取 OTHER
func ParseProtocolType(raw string) (ProtocolType, error) {
	switch p := ProtocolType(strings.ToUpper(strings.TrimSpace(raw))); p {
	case "":
		return ProtocolOther, nil
	case ProtocolZKEVM, ProtocolZKRollup, ProtocolOther:
		return p, nil
	default:
		return "", fmt.Errorf("invalid protocol type %q", raw)
	}
}

type ReportSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Protocol struct {
	Name string       `json:"name"`
	Type ProtocolType `gorm:"size:16;default:'OTHER'" json:"type"`
}

// ScopeItem 审计范围
type ScopeItem struct {
	Name        string `json:"name"`
	Repository  string `json:"repository"`
	CommitHash  string `json:"commit_hash"`
	Description string `json:"description"`
}

// Post 漏洞报告
type Post struct {
	baseModel.BaseModel
	UserID         string                         `gorm:"type:uuid;not null;index" json:"userId"`
	Title          string                         `gorm:"uniqueIndex:idx_posts_title;not null" json:"title"`
	Slug           string                         `gorm:"uniqueIndex:idx_posts_slug;not null" json:"slug"`
	Content        string                         `gorm:"type:text;not null" json:"content"`
	Image          string                         `gorm:"size:1024" json:"image"`
	Category       string                         `gorm:"size:128;index;default:'uncategorized'" json:"category"`
	PublishDate    time.Time                      `gorm:"not null" json:"publishDate"`
	ReportSource   ReportSource                   `gorm:"embedded;embeddedPrefix:report_source_" json:"reportSource"`
	AuditFirm      string                         `json:"auditFirm"`
	Protocol       Protocol                       `gorm:"embedded;embeddedPrefix:protocol_" json:"protocol"`
	Source         string                         `json:"source"`
	Severity       Severity                       `gorm:"size:16;default:'medium'" json:"severity"`
	Difficulty     Difficulty                     `gorm:"size:16;default:'medium'" json:"difficulty"`
	Tags           datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"tags"`
	Frameworks     datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"frameworks"`
	ReportedBy     datatypes.JSONSlice[string]    `gorm:"type:jsonb" json:"reported_by"`
	Scope          datatypes.JSONSlice[ScopeItem] `gorm:"type:jsonb" json:"scope"`
	FindingID      string                         `json:"finding_id"`
	TargetFile     string                         `json:"target_file"`
	Impact         string                         `gorm:"type:text" json:"impact"`
	Recommendation string                         `gorm:"type:text" json:"recommendation"`
}

// ApplyDefaults 补齐默认值，保证 JSON 数组字段不为 null
func (p *Post) ApplyDefaults(now time.Time) {
	if p.Image == "" {
		p.Image = DefaultImage
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.PublishDate.IsZero() {
		p.PublishDate = now
	}
	if p.Severity == "" {
		p.Severity = SeverityMedium
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyMedium
	}
	if p.Protocol.Type == "" {
		p.Protocol.Type = ProtocolOther
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.Frameworks == nil {
		p.Frameworks = datatypes.JSONSlice[string]{}
	}
	if p.ReportedBy == nil {
		p.ReportedBy = datatypes.JSONSlice[string]{}
	}
	if p.Scope == nil {
		p.Scope = datatypes.JSONSlice[ScopeItem]{}
	}
}
