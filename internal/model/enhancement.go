// internal/model/enhancement.go
package model

import "fmt"

const skipTierMessage = "Cannot skip difficulty levels. Must enhance to intermediate before advanced."

// ValidateEnhancementTiers は強化リクエストのティア指定を検証します。
// ストアや生成APIに触れる前に呼ぶこと。
func ValidateEnhancementTiers(target Difficulty, current *Difficulty) error {
	if !target.IsEnhanceTarget() {
		return NewAppError(
			CodeValidationError,
			fmt.Sprintf("target_difficulty must be one of: %s, %s", DifficultyIntermediate, DifficultyAdvanced),
			[]FieldError{{Field: "target_difficulty", Message: "must be intermediate or advanced"}},
			ErrInvalidInput,
		)
	}
	if current == nil {
		return nil
	}
	if !current.IsValid() {
		return NewAppError(
			CodeValidationError,
			"current_difficulty must be one of: beginner, intermediate, advanced",
			[]FieldError{{Field: "current_difficulty", Message: "must be beginner, intermediate or advanced"}},
			ErrInvalidInput,
		)
	}
	// beginner → advanced の飛び級は常に禁止
	if *current == DifficultyBeginner && target == DifficultyAdvanced {
		return NewAppError(CodeInvalidEnhancement, skipTierMessage, nil, ErrInvalidEnhancement)
	}
	return nil
}

// BasisDifficulty は強化元ティアを決めます。指定があればそれを、無ければ前段ティアを使います。
func BasisDifficulty(target Difficulty, current *Difficulty) (Difficulty, bool) {
	if current != nil {
		return *current, true
	}
	return target.Previous()
}

// FieldError はバリデーションエラー詳細の1件分です
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
