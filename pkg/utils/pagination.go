package utils

import "time"

const (
	DefaultLimit = 9
	MaxLimit     = 100
)

// Pagination 分页请求参数（偏移量风格）
type Pagination struct {
	StartIndex int    `json:"startIndex" form:"startIndex"`
	Limit      int    `json:"limit" form:"limit"`
	Order      string `json:"order" form:"order"`
}

// Normalize 补齐默认值并限制范围
func (p *Pagination) Normalize() {
	if p.StartIndex < 0 {
		p.StartIndex = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
}

// Ascending 是否升序
func (p Pagination) Ascending() bool {
	return p.Order == "asc"
}

// OneMonthAgo 月份减一得到的时间点；AddDate 对月底溢出的处理与 JS Date.setMonth 一致
func OneMonthAgo(now time.Time) time.Time {
	return now.AddDate(0, -1, 0)
}
