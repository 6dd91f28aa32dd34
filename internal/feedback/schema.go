package feedback

import "intervai/internal/models"

func float(v float64) *float64 { return &v }
func count(v int64) *int64     { return &v }

// feedbackSchema constrains the model to the five fixed categories, in order.
func feedbackSchema() *models.Schema {
	categories := models.FeedbackCategoriesList()
	n := int64(len(categories))
	return &models.Schema{
		Type: models.SchemaObject,
		Properties: map[string]*models.Schema{
			"totalScore": {Type: models.SchemaNumber, Minimum: float(0), Maximum: float(100)},
			"categoryScores": {
				Type:     models.SchemaArray,
				MinItems: count(n),
				MaxItems: count(n),
				Items: &models.Schema{
					Type: models.SchemaObject,
					Properties: map[string]*models.Schema{
						"name":    {Type: models.SchemaString, Enum: categories},
						"score":   {Type: models.SchemaNumber, Minimum: float(0), Maximum: float(100)},
						"comment": {Type: models.SchemaString},
					},
					Required: []string{"name", "score", "comment"},
				},
			},
			"strengths":           {Type: models.SchemaArray, Items: &models.Schema{Type: models.SchemaString}},
			"areasForImprovement": {Type: models.SchemaArray, Items: &models.Schema{Type: models.SchemaString}},
			"finalAssessment":     {Type: models.SchemaString},
		},
		Required: []string{"categoryScores", "strengths", "areasForImprovement", "finalAssessment"},
	}
}
