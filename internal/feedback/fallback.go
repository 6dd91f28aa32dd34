package feedback

import (
	"regexp"
	"unicode/utf16"

	"intervai/internal/models"
	"intervai/internal/utils"
)

var (
	technicalPattern      = regexp.MustCompile(`(?i)react|node|javascript|typescript|api|database|algorithm|data structure`)
	problemSolvingPattern = regexp.MustCompile(`(?i)problem|solve|approach|solution|method`)
)

const (
	fallbackTotalScore      = 60
	// measured in UTF-16 code units, the unit browser clients report lengths in
	communicationMinLength  = 100
	fallbackFinalAssessment = "Your interview has been completed successfully. While the AI feedback generation encountered a technical issue, your participation and responses were recorded. Consider retaking the interview for more detailed feedback."
)

// Fallback scores a transcript heuristically when generation fails. It is a pure function of the
// transcript text.
func Fallback(transcript []models.TranscriptMessage) *models.Feedback {
	text := utils.TranscriptText(transcript)
	technical := technicalPattern.MatchString(text)
	problemSolving := problemSolvingPattern.MatchString(text)
	communicative := len(utf16.Encode([]rune(text))) > communicationMinLength

	scores := []models.CategoryScore{
		pick(technical, models.CategoryTechnicalKnowledge,
			65, "You demonstrated some technical knowledge in your responses.",
			50, "Technical concepts were not extensively discussed in this interview."),
		pick(problemSolving, models.CategoryProblemSolving,
			65, "You showed problem-solving thinking in your approach.",
			50, "Problem-solving scenarios were limited in this interview."),
		pick(communicative, models.CategoryCommunication,
			70, "You communicated your thoughts clearly during the interview.",
			60, "Communication assessment was limited due to interview length."),
		{Name: models.CategoryLeadership, Score: 55, Comment: "Leadership and teamwork aspects were not extensively covered in this interview."},
		{Name: models.CategoryAdaptability, Score: 55, Comment: "Learning and adaptability aspects were not extensively covered in this interview."},
	}

	strengths := []string{"Successfully completed the interview."}
	if technical {
		strengths = append(strengths, "Demonstrated technical knowledge.")
	} else {
		strengths = append(strengths, "Engaged in the interview process.")
	}
	if communicative {
		strengths = append(strengths, "Communicated effectively.")
	} else {
		strengths = append(strengths, "Participated actively in the conversation.")
	}

	return &models.Feedback{
		TotalScore:     fallbackTotalScore,
		CategoryScores: scores,
		Strengths:      strengths,
		AreasForImprovement: []string{
			"Continue practicing technical concepts.",
			"Work on structured problem-solving approaches.",
			"Practice explaining complex topics clearly.",
		},
		FinalAssessment: fallbackFinalAssessment,
	}
}

func pick(cond bool, name string, hiScore int, hiComment string, loScore int, loComment string) models.CategoryScore {
	if cond {
		return models.CategoryScore{Name: name, Score: hiScore, Comment: hiComment}
	}
	return models.CategoryScore{Name: name, Score: loScore, Comment: loComment}
}
