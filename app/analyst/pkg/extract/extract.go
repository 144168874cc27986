// Package extract 将模型生成的半结构化文本还原为经过校验的类型化结果。
//
// 两个提取器遵循同一约定：永不失败。解析内部以 (record, error) 表达结果，
// 对外的 ExtractPlan / ExtractReport 在任何解析错误时无条件替换为固定的
// 兜底记录，错误只记日志，不向调用方传播。
package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// sliceMarked 标记截取：当整段文本不以 '<' 开头时，截取首个
// begin..end 标记之间的片段（含标记本身）。begin 缺失则原样返回，
// 交由后续解析失败触发兜底；end 缺失则保留 begin 之后的全部文本。
func sliceMarked(raw, begin, end string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "<") {
		return text
	}

	start := strings.Index(text, begin)
	if start == -1 {
		return text
	}
	text = text[start:]

	if stop := strings.Index(text, end); stop != -1 {
		text = text[:stop+len(end)]
	}
	return text
}

// childText 读取子元素的文本内容；子元素缺失或文本为空时返回兜底值
func childText(n *xmlquery.Node, name, fallback string) string {
	child := n.SelectElement(name)
	if child == nil {
		return fallback
	}
	if text := strings.TrimSpace(child.InnerText()); text != "" {
		return text
	}
	return fallback
}
