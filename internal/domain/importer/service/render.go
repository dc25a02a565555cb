package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"zkbugs/pkg/logger"

	"go.uber.org/zap"
)

// 只转义 & < >，与前端渲染约定一致
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// RenderContent 字符串原样返回；块数组渲染为 HTML
func RenderContent(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errors.New("content is required")
	}

	switch bytes.TrimSpace(raw)[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid content: %w", err)
		}
		return s, nil
	case '[':
		var blocks []ContentBlock
		if err := json.Unmarshal(raw, &blocks); err != nil {
			return "", fmt.Errorf("invalid content blocks: %w", err)
		}
		return RenderBlocks(blocks), nil
	default:
		return "", errors.New("content must be a string or a list of blocks")
	}
}

// RenderBlocks 按输入顺序渲染，块之间空一行
func RenderBlocks(blocks []ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "text":
			parts = append(parts, htmlEscaper.Replace(b.Text))
		case "code":
			parts = append(parts, renderCode(b))
		default:
			logger.Log.Warn("skipping unknown content block", zap.String("type", b.Type))
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderCode(b ContentBlock) string {
	var sb strings.Builder
	sb.WriteString("<pre><code")
	if lang := strings.TrimSpace(b.Language); lang != "" {
		sb.WriteString(` class="language-`)
		sb.WriteString(htmlEscaper.Replace(lang))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	sb.WriteString(htmlEscaper.Replace(b.Code))
	sb.WriteString("</code></pre>")
	if b.Description != "" {
		sb.WriteString("\n<em>")
		sb.WriteString(htmlEscaper.Replace(b.Description))
		sb.WriteString("</em>")
	}
	return sb.String()
}
