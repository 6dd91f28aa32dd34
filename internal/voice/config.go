package voice

import "os"

// Config carries the voice platform credentials.
type Config struct {
	WebToken    string
	AssistantID string
	GatewayURL  string
}

func NewConfig() *Config {
	return &Config{
		WebToken:    os.Getenv("VOICE_WEB_TOKEN"),
		AssistantID: os.Getenv("VOICE_ASSISTANT_ID"),
		GatewayURL:  os.Getenv("VOICE_GATEWAY_URL"),
	}
}
