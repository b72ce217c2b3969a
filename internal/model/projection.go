// internal/model/projection.go
package model

import "time"

// ProjectResponse はクライアントへ返すプロジェクトの表現です。
// 任意項目はキーを欠落させず、空配列・空オブジェクトで返します。
type ProjectResponse struct {
	ID                string            `json:"_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	ProjectType       ProjectType       `json:"project_type"`
	Difficulty        Difficulty        `json:"difficulty"`
	TechStack         []string          `json:"tech_stack"`
	Features          []string          `json:"features"`
	NewFeatures       []string          `json:"new_features"`
	Justification     map[string]string `json:"justification"`
	OriginalProjectID *string           `json:"original_project_id,omitempty"`
	CreatedAt         *string           `json:"created_at"`
	UpdatedAt         *string           `json:"updated_at"`
}

// ToProjectResponse は保存済みプロジェクトをレスポンス表現に変換します。nil は nil のまま。
func ToProjectResponse(p *Project) *ProjectResponse {
	if p == nil {
		return nil
	}

	resp := &ProjectResponse{
		ID:            p.ProjectID.String(),
		Title:         p.Title,
		Description:   p.Description,
		ProjectType:   p.ProjectType,
		Difficulty:    p.Difficulty,
		TechStack:     orEmpty(p.TechStack),
		Features:      orEmpty(p.Features),
		NewFeatures:   orEmpty(p.NewFeatures),
		Justification: p.Justification.Data(),
		CreatedAt:     formatTimestamp(p.CreatedAt),
		UpdatedAt:     formatTimestamp(p.UpdatedAt),
	}
	if resp.Justification == nil {
		resp.Justification = map[string]string{}
	}
	if p.OriginalProjectID != nil {
		id := p.OriginalProjectID.String()
		resp.OriginalProjectID = &id
	}
	return resp
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// 未設定 (ゼロ値) の時刻は null
func formatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
