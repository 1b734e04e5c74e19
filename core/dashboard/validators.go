package dashboard

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/questboard/core"
)

var (
	questTypeTag  = "questtype"
	questTypeText = "invalid quest type"

	questStatusTag  = "queststatus"
	questStatusText = "invalid quest status"

	difficultyTag  = "difficulty"
	difficultyText = "invalid difficulty"

	rankTierTag  = "ranktier"
	rankTierText = "invalid rank tier"
)

func init() {
	_ = core.Validate.RegisterValidation(questTypeTag, questTypeValidation)
	core.RegisterCustomTranslation(questTypeTag, questTypeText)

	_ = core.Validate.RegisterValidation(questStatusTag, questStatusValidation)
	core.RegisterCustomTranslation(questStatusTag, questStatusText)

	_ = core.Validate.RegisterValidation(difficultyTag, difficultyValidation)
	core.RegisterCustomTranslation(difficultyTag, difficultyText)

	_ = core.Validate.RegisterValidation(rankTierTag, rankTierValidation)
	core.RegisterCustomTranslation(rankTierTag, rankTierText)
}

func validateStruct(v interface{}) error {
	return core.Validate.Struct(v)
}

// Validate checks the snapshot at the adapter boundary; the store never
// re-validates what it is handed.
func (s Snapshot) Validate() error {
	return validateStruct(s)
}

func (ps PartialSnapshot) Validate() error {
	return validateStruct(ps)
}

// Custom Validators

func questTypeValidation(fl validator.FieldLevel) bool {
	return QuestType(fl.Field().String()).IsValid()
}

func questStatusValidation(fl validator.FieldLevel) bool {
	return QuestStatus(fl.Field().String()).IsValid()
}

func difficultyValidation(fl validator.FieldLevel) bool {
	return Difficulty(fl.Field().String()).IsValid()
}

func rankTierValidation(fl validator.FieldLevel) bool {
	return RankTier(fl.Field().String()).IsValid()
}
