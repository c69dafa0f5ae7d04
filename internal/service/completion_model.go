package service

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Scorer 完成率打分接口。模型本身由离线训练产出，
// 服务端只负责加载参数并求值，训练不在本仓库范围内。
type Scorer interface {
	Score(features []float64) (probability float64, completed bool)
}

// ScalerParams 标准化参数，对应训练侧的 StandardScaler
type ScalerParams struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// CompletionModel 逻辑回归形式的完成率模型，从JSON产物加载
type CompletionModel struct {
	ModelType    string       `json:"model_type"`
	Version      string       `json:"version"`
	Features     []string     `json:"features"`
	Intercept    float64      `json:"intercept"`
	Coefficients []float64    `json:"coefficients"`
	Scaler       ScalerParams `json:"scaler"`
}

func LoadCompletionModel(path string) (*CompletionModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m CompletionModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	n := len(m.Features)
	if n == 0 {
		return nil, fmt.Errorf("model artifact declares no features")
	}
	if len(m.Coefficients) != n || len(m.Scaler.Mean) != n || len(m.Scaler.Std) != n {
		return nil, fmt.Errorf("model artifact dimension mismatch: %d features, %d coefficients, %d/%d scaler params",
			n, len(m.Coefficients), len(m.Scaler.Mean), len(m.Scaler.Std))
	}

	return &m, nil
}

// Score 标准化后求线性组合，经 sigmoid 得到完成概率
func (m *CompletionModel) Score(features []float64) (float64, bool) {
	z := m.Intercept
	for i, x := range features {
		std := m.Scaler.Std[i]
		if std == 0 {
			// 零方差特征不提供信息，跳过缩放
			std = 1
		}
		z += m.Coefficients[i] * (x - m.Scaler.Mean[i]) / std
	}

	prob := 1 / (1 + math.Exp(-z))
	return prob, prob >= 0.5
}
