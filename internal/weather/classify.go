package weather

import (
	"strings"

	"github.com/i474232898/weather-lookup/internal/common"
)

type conditionRule struct {
	keywords  []string
	condition Condition
}

// conditionRules is evaluated top to bottom. A text matching several rules
// resolves to the first one ("rainy and stormy" is rain).
var conditionRules = []conditionRule{
	{keywords: []string{"rain"}, condition: ConditionRain},
	{keywords: []string{"cloud"}, condition: ConditionCloudy},
	{keywords: []string{"sun", "clear"}, condition: ConditionClear},
	{keywords: []string{"snow"}, condition: ConditionSnow},
	{keywords: []string{"mist"}, condition: ConditionMist},
	{keywords: []string{"storm"}, condition: ConditionStorm},
}

// Classify maps free-form provider condition text to a Condition using
// case-insensitive substring containment.
func Classify(text string) Condition {
	lower := strings.ToLower(text)
	for _, rule := range conditionRules {
		if common.HasAny(lower, rule.keywords...) {
			return rule.condition
		}
	}
	return ConditionUnknown
}
