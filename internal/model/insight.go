package model

// ModelInsights /insights 响应体，描述当前加载的模型
type ModelInsights struct {
	Message      string   `json:"message"`
	ModelType    string   `json:"model_type"`
	FeaturesUsed []string `json:"features_used"`
	Version      string   `json:"version"`
}
