package ai

import (
	"encoding/json"

	"tender-drafting-api/internal/entity"
)

// summarizeTenderContext serializes the slice of the tender the generation
// prompt needs. Versioned documents collapse to their active content and
// empty values are dropped to keep the prompt small.
func summarizeTenderContext(name string, data *entity.TenderData) (string, error) {
	context := map[string]any{
		"name": name,
		"stage1": map[string]any{
			"expedientNumber":          data.Stage1.ExpedientNumber,
			"serviceName":              data.Stage1.ServiceName,
			"contractingAuthorityName": data.Stage1.ContractingAuthorityName,
			"needs":                    data.Stage1.Needs.ActiveContent(),
			"initialDuration":          data.Stage1.InitialDuration,
			"infoSystemName":           data.Stage1.InfoSystemName,
			"protectedDataDetails":     data.Stage1.ProtectedDataDetails.ActiveContent(),
		},
		"stage2": map[string]any{
			"necessityReport": map[string]any{
				"background":    data.Stage2.NecessityReport.Background.ActiveContent(),
				"valueJudgment": data.Stage2.NecessityReport.EvaluationCriteria.ValueJudgment.ActiveContent(),
				"quantifiable":  data.Stage2.NecessityReport.EvaluationCriteria.Quantifiable,
			},
			"creditCertificate": map[string]any{
				"basePrice":      data.Stage2.CreditCertificate.BasePrice,
				"estimatedPrice": data.Stage2.CreditCertificate.EstimatedPrice,
			},
		},
		"stage3": map[string]any{
			"characteristicsData": map[string]any{
				"object":       data.Stage3.CharacteristicsData.Object.ActiveContent(),
				"legalNature":  data.Stage3.CharacteristicsData.LegalNature,
				"lotDivision":  data.Stage3.CharacteristicsData.LotDivision,
				"numberOfLots": data.Stage3.CharacteristicsData.NumberOfLots,
				"baseBudget":   data.Stage3.CharacteristicsData.BaseBudget,
			},
		},
	}

	raw, err := json.MarshalIndent(pruneEmpty(context), "", "  ")
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// pruneEmpty drops empty strings and empty maps so answered fields stand out.
func pruneEmpty(value map[string]any) map[string]any {
	out := make(map[string]any, len(value))
	for key, v := range value {
		switch typed := v.(type) {
		case string:
			if typed != "" {
				out[key] = typed
			}
		case map[string]any:
			if nested := pruneEmpty(typed); len(nested) > 0 {
				out[key] = nested
			}
		default:
			out[key] = v
		}
	}

	return out
}
