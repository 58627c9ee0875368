// Package stats computes summary statistics over a club's shot history.
package stats

import (
	"github.com/mmynk/caddie/internal/models"
)

// Summary is the derived statistics for one club.
type Summary struct {
	ClubID         string
	Name           string
	AverageYardage int
	ShotCount      int
	Longest        float64 // 0 with no shots
	Shortest       float64 // 0 with no shots
}

// CourseAverage is a club's average yardage on one course.
type CourseAverage struct {
	Course         string // empty for shots recorded without a course
	AverageYardage int
	ShotCount      int
}

// Summarize computes the summary for club.
func Summarize(club models.Club) Summary {
	summary := Summary{
		ClubID:         club.ID,
		Name:           club.Name,
		AverageYardage: club.AverageYardage(),
		ShotCount:      len(club.Shots),
	}

	for i, shot := range club.Shots {
		if i == 0 || shot.Distance > summary.Longest {
			summary.Longest = shot.Distance
		}
		if i == 0 || shot.Distance < summary.Shortest {
			summary.Shortest = shot.Distance
		}
	}

	return summary
}

// SummarizeAll summarizes every club, preserving order.
func SummarizeAll(clubs []models.Club) []Summary {
	summaries := make([]Summary, len(clubs))
	for i, club := range clubs {
		summaries[i] = Summarize(club)
	}
	return summaries
}

// ByCourse groups a club's shots by course and averages each group.
// Groups appear in the order their course was first recorded.
func ByCourse(club models.Club) []CourseAverage {
	type bucket struct {
		total float64
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, shot := range club.Shots {
		b, exists := buckets[shot.Course]
		if !exists {
			b = &bucket{}
			buckets[shot.Course] = b
			order = append(order, shot.Course)
		}
		b.total += shot.Distance
		b.count++
	}

	averages := make([]CourseAverage, 0, len(order))
	for _, course := range order {
		b := buckets[course]
		averages = append(averages, CourseAverage{
			Course:         course,
			AverageYardage: int(b.total / float64(b.count)),
			ShotCount:      b.count,
		})
	}
	return averages
}
