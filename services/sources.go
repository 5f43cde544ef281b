package services

import (
	"strings"

	"google.golang.org/genai"

	"groundedanalyst/models"
)

// responseText 拼接第一个候选结果中的文本片段（跳过 thought）
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// ExtractSources 收集 grounding 引用的 web URI，按首次出现顺序去重
func ExtractSources(resp *genai.GenerateContentResponse) []models.Source {
	sources := []models.Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return sources
	}

	seen := make(map[string]struct{}, len(gm.GroundingChunks))
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		uri := chunk.Web.URI
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		sources = append(sources, models.Source{URI: uri})
	}
	return sources
}
