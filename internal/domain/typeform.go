package domain

import "assignment-bot/internal/apperror"

// FormWebhook is the body Typeform posts for a submitted form.
type FormWebhook struct {
	EventID      string        `json:"event_id"`
	EventType    string        `json:"event_type"`
	FormResponse *FormResponse `json:"form_response"`
}

type FormResponse struct {
	FormID      string   `json:"form_id"`
	Token       string   `json:"token"`
	SubmittedAt string   `json:"submitted_at"`
	Answers     []Answer `json:"answers"`
}

type AnswerField struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Ref  string `json:"ref"`
}

// Answer holds one answer; only the value field matching Type is set.
type Answer struct {
	Type  string      `json:"type"`
	Field AnswerField `json:"field"`
	Text  string      `json:"text,omitempty"`
	Email string      `json:"email,omitempty"`
	URL   string      `json:"url,omitempty"`
}

// AnswerIndex maps a field ref to its answer. The first answer for a ref wins.
type AnswerIndex map[string]Answer

func NewAnswerIndex(answers []Answer) AnswerIndex {
	idx := make(AnswerIndex, len(answers))
	for _, answer := range answers {
		if _, seen := idx[answer.Field.Ref]; !seen {
			idx[answer.Field.Ref] = answer
		}
	}
	return idx
}

func (idx AnswerIndex) Text(ref string) (string, error) {
	return idx.value(ref, "text", func(a Answer) string { return a.Text })
}

func (idx AnswerIndex) Email(ref string) (string, error) {
	return idx.value(ref, "email", func(a Answer) string { return a.Email })
}

func (idx AnswerIndex) URL(ref string) (string, error) {
	return idx.value(ref, "url", func(a Answer) string { return a.URL })
}

func (idx AnswerIndex) value(ref, kind string, pick func(Answer) string) (string, error) {
	answer, ok := idx[ref]
	if !ok {
		return "", apperror.Parsing(nil, "no answer for field %q", ref)
	}
	v := pick(answer)
	if v == "" {
		return "", apperror.Parsing(nil, "answer for field %q has no %s value", ref, kind)
	}
	return v, nil
}
