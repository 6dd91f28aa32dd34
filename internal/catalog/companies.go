package catalog

import (
	"math/rand"
	"strings"

	"intervai/internal/models"
)

// Company is a static interview modelled on a company's hiring loop.
type Company struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Type        string   `json:"type"`
	Techstack   []string `json:"techstack"`
	CoverImage  string   `json:"coverImage"`
	Description string   `json:"description,omitempty"`
}

var companies = []Company{
	{
		ID: "static-google", Name: "Google", Role: "Software Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"react", "nodejs", "aws", "typescript"},
		CoverImage:  "/covers/adobe.png",
		Description: "Comprehensive interview covering technical skills and behavioral competencies",
	},
	{
		ID: "static-amazon", Name: "Amazon", Role: "Software Development Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"java", "spring", "aws", "docker"},
		CoverImage:  "/covers/amazon.png",
		Description: "Full assessment including technical expertise and leadership principles",
	},
	{
		ID: "static-microsoft", Name: "Microsoft", Role: "Software Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"csharp", "dotnet", "azure", "sql"},
		CoverImage:  "/covers/skype.png",
		Description: "Balanced interview with technical depth and behavioral assessment",
	},
	{
		ID: "static-meta", Name: "Meta", Role: "Frontend Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"react", "javascript", "php", "graphql"},
		CoverImage:  "/covers/facebook.png",
		Description: "Comprehensive evaluation of technical skills and cultural fit",
	},
	{
		ID: "static-spotify", Name: "Spotify", Role: "Backend Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"python", "django", "postgresql", "redis"},
		CoverImage:  "/covers/spotify.png",
		Description: "Full-stack assessment including technical and behavioral competencies",
	},
	{
		ID: "static-netflix", Name: "Netflix", Role: "Full Stack Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"javascript", "react", "nodejs", "aws"},
		CoverImage:  "/covers/reddit.png",
		Description: "Comprehensive full-stack assessment with focus on scalability and performance",
	},
	{
		ID: "static-apple", Name: "Apple", Role: "iOS Developer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"swift", "ios", "xcode", "cocoa"},
		CoverImage:  "/covers/pinterest.png",
		Description: "iOS development assessment with focus on user experience and performance",
	},
	{
		ID: "static-uber", Name: "Uber", Role: "Mobile Engineer", Type: models.InterviewTypeMixed,
		Techstack:   []string{"reactnative", "javascript", "aws", "mongodb"},
		CoverImage:  "/covers/telegram.png",
		Description: "Mobile development assessment with real-time systems focus",
	},
}

var covers = []string{
	"/covers/adobe.png",
	"/covers/amazon.png",
	"/covers/facebook.png",
	"/covers/hostinger.png",
	"/covers/pinterest.png",
	"/covers/quora.png",
	"/covers/reddit.png",
	"/covers/skype.png",
	"/covers/spotify.png",
	"/covers/telegram.png",
	"/covers/tiktok.png",
	"/covers/yahoo.png",
}

func All() []Company {
	out := make([]Company, len(companies))
	copy(out, companies)
	return out
}

func ByID(id string) (Company, bool) {
	for _, c := range companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

// ByName matches the company name case-insensitively.
func ByName(name string) (Company, bool) {
	for _, c := range companies {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Company{}, false
}

// Available drops the companies the user already has an interview for, matching on role, type
// and the comma-joined techstack.
func Available(userInterviews []models.Interview) []Company {
	taken := make(map[string]bool, len(userInterviews))
	for _, iv := range userInterviews {
		taken[fingerprint(iv.Role, iv.Type, iv.Techstack)] = true
	}
	out := make([]Company, 0, len(companies))
	for _, c := range companies {
		if !taken[fingerprint(c.Role, c.Type, c.Techstack)] {
			out = append(out, c)
		}
	}
	return out
}

func fingerprint(role, typ string, techstack []string) string {
	return role + "\x00" + typ + "\x00" + strings.Join(techstack, ",")
}

// RandomCover picks a cover image for a generated interview.
func RandomCover(rng *rand.Rand) string {
	if rng == nil {
		return covers[rand.Intn(len(covers))]
	}
	return covers[rng.Intn(len(covers))]
}

// Interview builds the draft record created when a user opens a company interview.
func (c Company) Interview(userID string) *models.Interview {
	return &models.Interview{
		UserID:     userID,
		Role:       c.Role,
		Type:       c.Type,
		Techstack:  append([]string(nil), c.Techstack...),
		Questions:  []string{},
		CoverImage: c.CoverImage,
		Finalized:  false,
	}
}
