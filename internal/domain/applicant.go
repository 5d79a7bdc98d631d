package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"assignment-bot/internal/apperror"
)

// Field refs configured on the application form.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldGitHubID = "github-id"
	FieldCalendly = "calendly"
)

const maxHandleLength = 39

var (
	handlePattern     = regexp.MustCompile(`^[a-z\d](?:[a-z\d]|-[a-z\d])*$`)
	profileURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s]+)/?$`)
	eventIDPattern    = regexp.MustCompile(`(?:\w{4,12}-?){5}`)
)

// ApplicantRecord is what one form submission tells us about the applicant.
// GitHubHandle is empty when RawGitHubID could not be resolved.
type ApplicantRecord struct {
	Name              string
	Email             string
	RawGitHubID       string
	GitHubHandle      string
	SchedulingURL     string
	SchedulingEventID string
}

// HandleResolved reports whether a GitHub handle was found in the answer.
func (a ApplicantRecord) HandleResolved() bool {
	return a.GitHubHandle != ""
}

// ParseFormSubmission decodes a Typeform webhook body into an applicant.
// A body without form_response.answers is a validation error; a missing or
// unparseable answer is a parsing error.
func ParseFormSubmission(payload []byte) (ApplicantRecord, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return ApplicantRecord{}, apperror.Validation("empty body")
	}

	var hook FormWebhook
	if err := json.Unmarshal(payload, &hook); err != nil {
		return ApplicantRecord{}, apperror.Parsing(err, "decode form payload")
	}
	if hook.FormResponse == nil || hook.FormResponse.Answers == nil {
		return ApplicantRecord{}, apperror.Validation("no form_response.answers in payload")
	}

	idx := NewAnswerIndex(hook.FormResponse.Answers)
	var (
		record ApplicantRecord
		err    error
	)
	if record.Name, err = idx.Text(FieldName); err != nil {
		return ApplicantRecord{}, err
	}
	if record.Email, err = idx.Email(FieldEmail); err != nil {
		return ApplicantRecord{}, err
	}
	if record.RawGitHubID, err = idx.Text(FieldGitHubID); err != nil {
		return ApplicantRecord{}, err
	}
	if record.SchedulingURL, err = idx.URL(FieldCalendly); err != nil {
		return ApplicantRecord{}, err
	}

	record.GitHubHandle, _ = ResolveGitHubHandle(record.RawGitHubID)

	if record.SchedulingEventID, err = ExtractSchedulingEventID(record.SchedulingURL); err != nil {
		return ApplicantRecord{}, err
	}
	return record, nil
}

// IsValidGitHubHandle checks the GitHub username grammar: 1-39 alphanumerics
// with single hyphens between them.
func IsValidGitHubHandle(s string) bool {
	return len(s) <= maxHandleLength && handlePattern.MatchString(strings.ToLower(s))
}

// ResolveGitHubHandle turns a free-text answer into a lowercase handle. The
// last path segment is used when it is a handle on its own; otherwise the
// answer must be a github.com profile URL carrying a valid handle.
func ResolveGitHubHandle(raw string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	segment := lowered[strings.LastIndex(lowered, "/")+1:]
	if IsValidGitHubHandle(segment) {
		return segment, true
	}

	if m := profileURLPattern.FindStringSubmatch(lowered); m != nil && IsValidGitHubHandle(m[1]) {
		return m[1], true
	}
	return "", false
}

// ExtractSchedulingEventID pulls the five-part event token out of a Calendly
// link.
func ExtractSchedulingEventID(link string) (string, error) {
	id := eventIDPattern.FindString(link)
	if id == "" {
		return "", apperror.Parsing(nil, "no event id in scheduling link %q", link)
	}
	return id, nil
}
