package service

import (
	"github.com/mmynk/caddie/internal/models"
	"github.com/mmynk/caddie/internal/recorder"
	"github.com/mmynk/caddie/internal/stats"
)

func toCoordinate(c *models.Coordinate) *Coordinate {
	if c == nil {
		return nil
	}
	return &Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

func toShot(s models.Shot) Shot {
	return Shot{
		DistanceYards: s.Distance,
		Source:        string(s.Source),
		Date:          s.Date,
		Course:        s.Course,
		Hole:          s.Hole,
		ShotNumber:    s.ShotNumber,
		Start:         toCoordinate(s.Start),
	}
}

func fromShot(s Shot) models.Shot {
	shot := models.Shot{
		Distance:   s.DistanceYards,
		Source:     models.Source(s.Source),
		Date:       s.Date,
		Course:     s.Course,
		Hole:       s.Hole,
		ShotNumber: s.ShotNumber,
	}
	if s.Start != nil {
		shot.Start = &models.Coordinate{Latitude: s.Start.Latitude, Longitude: s.Start.Longitude}
	}
	return shot
}

func toClub(c models.Club) Club {
	return toClubWithSummary(c, stats.Summarize(c))
}

func toClubWithSummary(c models.Club, summary stats.Summary) Club {
	club := Club{
		ID:             c.ID,
		Name:           c.Name,
		Yardage:        c.Yardage,
		AverageYardage: summary.AverageYardage,
		ShotCount:      summary.ShotCount,
		LongestYards:   summary.Longest,
		ShortestYards:  summary.Shortest,
		Shots:          make([]Shot, len(c.Shots)),
	}
	for i, s := range c.Shots {
		club.Shots[i] = toShot(s)
	}
	return club
}

func toClubs(clubs []models.Club) []Club {
	summaries := stats.SummarizeAll(clubs)
	out := make([]Club, len(clubs))
	for i, c := range clubs {
		out[i] = toClubWithSummary(c, summaries[i])
	}
	return out
}

func toRecording(s *recorder.Session) Recording {
	rec := Recording{
		SessionID:  s.ID,
		Mode:       string(s.Engine.Mode()),
		ClubID:     s.ClubID,
		Course:     s.Course,
		FrontNine:  s.FrontNine,
		Holes:      recorder.Holes(s.FrontNine),
		Hole:       s.Hole,
		ShotNumber: s.ShotNumber,
		StartPin:   toCoordinate(s.Engine.StartPin()),
		EndPin:     toCoordinate(s.Engine.EndPin()),
	}
	if yards, source, ok := s.Engine.Distance(); ok {
		rec.HasDistance = true
		rec.DistanceYards = yards
		rec.DistanceSource = string(source)
	}
	return rec
}
