package utils

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s_-]`)
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
	titleStrip   = regexp.MustCompile(`[^a-z0-9-]`)
)

// GenerateSlug 导入数据使用的 slug：小写、去标点、分隔符合并为单个连字符、去首尾连字符
func GenerateSlug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TitleSlug 后台发帖使用的 slug：空格替换为连字符后去掉非字母数字字符
func TitleSlug(title string) string {
	s := strings.ToLower(strings.Join(strings.Split(title, " "), "-"))
	return titleStrip.ReplaceAllString(s, "")
}
