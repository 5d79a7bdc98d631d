package internal

import (
	"assignment-bot/internal/apperror"

	"github.com/caarlos0/env/v11"
)

type Configuration struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	CalendlyToken   string `env:"CALENDLY_TOKEN"`
	CalendlyUserURI string `env:"CALENDLY_USER_URI"`
	CalendlyAPIURL  string `env:"CALENDLY_API_URL" envDefault:"https://api.calendly.com"`

	ClickUpToken       string `env:"CLICKUP_TOKEN"`
	ClickUpListID      string `env:"CLICKUP_LIST_ID"`
	ClickUpRepoFieldID string `env:"CLICKUP_GH_REPO_FIELD_ID"`
	ClickUpPRFieldID   string `env:"CLICKUP_GH_PR_FIELD_ID"`
	ClickUpAPIURL      string `env:"CLICKUP_API_URL" envDefault:"https://api.clickup.com/api/v2"`

	GithubOrg           string `env:"GITHUB_ORG"`
	GithubReviewerID    string `env:"GITHUB_REVIEWER_ID"`
	GithubTemplateRepo  string `env:"GITHUB_TEMPLATE_REPO"`
	GithubToken         string `env:"GITHUB_TOKEN"`
	GithubUserAgent     string `env:"GITHUB_USER_AGENT"`
	GithubWebhookSecret string `env:"GITHUB_WEBHOOK_SECRET"`
	GithubAPIURL        string `env:"GITHUB_API_URL" envDefault:"https://api.github.com/"`
}

// required lists the settings every webhook needs, in reporting order.
func (c Configuration) required() []struct{ key, value string } {
	return []struct{ key, value string }{
		{"CALENDLY_TOKEN", c.CalendlyToken},
		{"CALENDLY_USER_URI", c.CalendlyUserURI},
		{"CLICKUP_TOKEN", c.ClickUpToken},
		{"CLICKUP_LIST_ID", c.ClickUpListID},
		{"CLICKUP_GH_REPO_FIELD_ID", c.ClickUpRepoFieldID},
		{"CLICKUP_GH_PR_FIELD_ID", c.ClickUpPRFieldID},
		{"GITHUB_ORG", c.GithubOrg},
		{"GITHUB_REVIEWER_ID", c.GithubReviewerID},
		{"GITHUB_TEMPLATE_REPO", c.GithubTemplateRepo},
		{"GITHUB_TOKEN", c.GithubToken},
		{"GITHUB_USER_AGENT", c.GithubUserAgent},
	}
}

// Missing returns the name of every required setting that is empty.
func (c Configuration) Missing() []string {
	var missing []string
	for _, setting := range c.required() {
		if setting.value == "" {
			missing = append(missing, setting.key)
		}
	}
	return missing
}

// Validate fails with a single error naming all missing settings.
func (c Configuration) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return apperror.MissingConfiguration(missing)
	}
	return nil
}

func LoadConfiguration() (Configuration, error) {
	config := Configuration{}
	err := env.Parse(&config)
	if err != nil {
		return config, err
	}
	return config, config.Validate()
}
