package models

// AnalyzeRequest POST /api/analyze 请求体
type AnalyzeRequest struct {
	Query string `json:"query" binding:"required"`
}

// Source 一条引用来源，按 URI 去重
type Source struct {
	URI string `json:"uri"`
}

// AnalyzeResponse 分析结果；Sources 没有引用时为空数组而不是 null
type AnalyzeResponse struct {
	Analysis string   `json:"analysis"`
	Sources  []Source `json:"sources"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	ErrMsgMissingQuery = "Missing 'query' in request body."
	ErrMsgInternal     = "Internal server error during analysis."
)
