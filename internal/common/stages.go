package common

// Stage keys name the top-level sections of a tender's data tree. Each key
// corresponds to one step of the drafting wizard.
const (
	StageKey1 = "stage1"
	StageKey2 = "stage2"
	StageKey3 = "stage3"
	StageKey4 = "stage4"
	StageKey5 = "stage5"
)

const StagesCount = 5

func IsValidStageKey(key string) bool {
	switch key {
	case StageKey1, StageKey2, StageKey3, StageKey4, StageKey5:
		return true
	}

	return false
}
