package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	postModel "zkbugs/internal/domain/post/model"
)

// RawRecord 导入文件中的单条报告，兼容驼峰与下划线两套旧字段
type RawRecord struct {
	Title          string                  `json:"title"`
	Content        json.RawMessage         `json:"content"`
	Category       string                  `json:"category"`
	Image          string                  `json:"image"`
	Severity       string                  `json:"severity"`
	Difficulty     string                  `json:"difficulty"`
	Protocol       json.RawMessage         `json:"protocol"`
	ProtocolType   string                  `json:"protocol_type"`
	ReportSource   *postModel.ReportSource `json:"reportSource"`
	Source         string                  `json:"source"`
	SourceURL      string                  `json:"source_url"`
	ReportURL      string                  `json:"report_url"`
	AuditFirm      string                  `json:"auditFirm"`
	PublishDate    string                  `json:"publishDate"`
	PublishDateAlt string                  `json:"publish_date"`
	Date           string                  `json:"date"`
	Tags           []string                `json:"tags"`
	Frameworks     []string                `json:"frameworks"`
	ReportedBy     []string                `json:"reported_by"`
	Scope          []postModel.ScopeItem   `json:"scope"`
	FindingID      string                  `json:"finding_id"`
	TargetFile     string                  `json:"target_file"`
	Impact         string                  `json:"impact"`
	Recommendation string                  `json:"recommendation"`
}

// ContentBlock 结构化正文块
type ContentBlock struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type protocolObject struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ParseRecords 读取导入文件：顶层数组或 {"posts": [...]}
func ParseRecords(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("import file is empty")
	}

	var records []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return records, nil
	}

	var wrapper struct {
		Posts []json.RawMessage `json:"posts"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if wrapper.Posts == nil {
		return nil, errors.New(`expected a JSON array or an object with a "posts" array`)
	}
	return wrapper.Posts, nil
}

// decodeRecord 单条解码；失败时尽量取出标题用于报错
func decodeRecord(raw json.RawMessage) (*RawRecord, string, error) {
	var rec RawRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		var titled struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(raw, &titled)
		return nil, titled.Title, fmt.Errorf("malformed record: %w", err)
	}
	return &rec, rec.Title, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// protocol 嵌套对象优先，其次旧的平铺字段
func (r *RawRecord) protocol() (postModel.Protocol, error) {
	var name, typ string
	switch {
	case isNull(r.Protocol):
		typ = r.ProtocolType
	case bytes.TrimSpace(r.Protocol)[0] == '{':
		var obj protocolObject
		if err := json.Unmarshal(r.Protocol, &obj); err != nil {
			return postModel.Protocol{}, fmt.Errorf("invalid protocol: %w", err)
		}
		name, typ = obj.Name, obj.Type
		if typ == "" {
			typ = r.ProtocolType
		}
	default:
		if err := json.Unmarshal(r.Protocol, &name); err != nil {
			return postModel.Protocol{}, fmt.Errorf("invalid protocol: %w", err)
		}
		typ = r.ProtocolType
	}

	pt, err := postModel.ParseProtocolType(typ)
	if err != nil {
		return postModel.Protocol{}, err
	}
	return postModel.Protocol{Name: strings.TrimSpace(name), Type: pt}, nil
}

// reportSource 显式对象优先；否则由 source/auditFirm 推导
func (r *RawRecord) reportSource() postModel.ReportSource {
	if r.ReportSource != nil && (r.ReportSource.Name != "" || r.ReportSource.URL != "") {
		return *r.ReportSource
	}
	return postModel.ReportSource{
		Name: firstNonEmpty(r.Source, r.AuditFirm, postModel.DefaultSourceName),
		URL:  firstNonEmpty(r.SourceURL, r.ReportURL),
	}
}

func (r *RawRecord) auditFirm() string {
	return firstNonEmpty(r.AuditFirm, r.Source, postModel.DefaultAuditFirm)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// publishDate 未提供时返回零值，由 ApplyDefaults 补为当前时间
func (r *RawRecord) publishDate() (time.Time, error) {
	raw := strings.TrimSpace(firstNonEmpty(r.PublishDate, r.PublishDateAlt, r.Date))
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid publish date %q", raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
