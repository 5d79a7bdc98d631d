package domain

import (
	"fmt"
	"time"
)

const repoDateLayout = "20060102"

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// ScheduledEventInfo is the part of a Calendly event the bot uses.
type ScheduledEventInfo struct {
	URI       string
	StartTime time.Time
}

// RepositoryRequest describes the repository generated for an applicant.
type RepositoryRequest struct {
	Name        string
	Description string
}

// FormatSeoulDate renders the calendar date of t in Korea as YYYYMMDD.
func FormatSeoulDate(t time.Time) string {
	return t.In(seoul).Format(repoDateLayout)
}

// NewRepositoryRequest names the repository {handle}-{YYYYMMDD} after the
// interview start date and describes it as "Name <email>".
func NewRepositoryRequest(applicant ApplicantRecord, start time.Time) RepositoryRequest {
	return RepositoryRequest{
		Name:        applicant.GitHubHandle + "-" + FormatSeoulDate(start),
		Description: fmt.Sprintf("%s <%s>", applicant.Name, applicant.Email),
	}
}

// DueDate is two calendar days after start, keeping the wall-clock time.
func DueDate(start time.Time) time.Time {
	return start.UTC().AddDate(0, 0, 2)
}
