package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr            string
	SlackBotToken         string
	SlashCommand          string
	ModalCallbackID       string
	LinearAPIKey          string
	LinearTeamID          string
	LinearURL             string
	LinearBaseLabelID     string
	ComponentsFile        string
	RedisAddr             string
	RedisPassword         string
	RedisSlackLinerList   string
	ConfirmationChannelID string
	ConfirmationTTL       int
	LogLevel              string
}

// ComponentOption is one entry of the component select shown in the
// issue modal. ID is the Linear label id the option maps to.
type ComponentOption struct {
	Label string `yaml:"label"`
	ID    string `yaml:"id"`
}

func loadConfig() Config {
	return Config{
		ListenAddr:            getEnv("LISTEN_ADDR", ":3000"),
		SlackBotToken:         getEnv("SLACK_BOT_TOKEN", ""),
		SlashCommand:          getEnv("SLASH_COMMAND", "/issue"),
		ModalCallbackID:       getEnv("MODAL_CALLBACK_ID", "issue_report_modal"),
		LinearAPIKey:          getEnv("LINEAR_API_KEY", ""),
		LinearTeamID:          getEnv("LINEAR_TEAM_ID", ""),
		LinearURL:             getEnv("LINEAR_URL", "https://api.linear.app/graphql"),
		LinearBaseLabelID:     getEnv("LINEAR_BASE_LABEL_ID", "59f1342b-9ba3-4168-b3f6-a097a3de40af"),
		ComponentsFile:        getEnv("COMPONENTS_FILE", ""),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisSlackLinerList:   getEnv("REDIS_SLACKLINER_LIST", "slack_messages"),
		ConfirmationChannelID: getEnv("CONFIRMATION_CHANNEL_ID", ""),
		ConfirmationTTL:       getEnvAsIntSeconds("CONFIRMATION_TTL", "48h"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
	}
}

// defaultComponents is the built-in catalog used when no COMPONENTS_FILE
// is configured.
func defaultComponents() []ComponentOption {
	return []ComponentOption{
		{Label: "ACE", ID: "cbef7a2c-1a77-4a5c-b214-39188924d63f"},
		{Label: "Control Room", ID: "0d0d9e0b-f2ef-42b4-8131-b5fa4f530086"},
		{Label: "Workroom UI", ID: "dd51de8b-6f12-47a4-94a8-73b090b0303e"},
	}
}

func loadComponents(path string) ([]ComponentOption, error) {
	if path == "" {
		return defaultComponents(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read components file: %v", err)
	}
	var catalog struct {
		Components []ComponentOption `yaml:"components"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse components file: %v", err)
	}
	if len(catalog.Components) == 0 {
		return nil, fmt.Errorf("components file %s defines no components", path)
	}
	for _, c := range catalog.Components {
		if c.Label == "" || c.ID == "" {
			return nil, fmt.Errorf("components file %s has an entry missing label or id", path)
		}
	}
	return catalog.Components, nil
}

func getEnvAsIntSeconds(key, defaultValue string) int {
	val := os.Getenv(key)
	if val == "" {
		val = defaultValue
	}
	if i, err := strconv.Atoi(val); err == nil {
		return i
	}
	if d, err := time.ParseDuration(val); err == nil {
		return int(d.Seconds())
	}
	log.Printf("Unable to parse %s=%q as int seconds or duration; defaulting to 0", key, val)
	return 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
