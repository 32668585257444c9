package filter

import "github.com/workadmin/workadmin-go/internal/model"

// Summary holds the headline counts shown above the listing tabs.
type Summary struct {
	TotalUsers   int
	TotalSeekers int
	VerifiedDocs int
	Pending      int
	Approved     int
	Rejected     int
}

// Summarize derives the listing counts from the fetched data. TotalUsers
// counts only plain user accounts; VerifiedDocs counts seekers that have
// uploaded both identity documents.
func Summarize(users []model.Profile, seekers []model.JobSeekerWithProfile) Summary {
	var s Summary

	for _, u := range users {
		if u.UserType == model.UserTypeUser {
			s.TotalUsers++
		}
		countStatus(&s, u.Status.Valid, u.Status.String)
	}

	s.TotalSeekers = len(seekers)
	for _, sk := range seekers {
		if sk.Verified() {
			s.VerifiedDocs++
		}
		countStatus(&s, sk.Status.Valid, sk.Status.String)
	}

	return s
}

func countStatus(s *Summary, valid bool, status string) {
	if !valid {
		s.Pending++
		return
	}
	switch status {
	case model.StatusApproved:
		s.Approved++
	case model.StatusRejected:
		s.Rejected++
	default:
		s.Pending++
	}
}
