package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/caddie/internal/shell"
	"github.com/mmynk/caddie/internal/stats"
)

// ListClubs returns the bag with derived statistics.
func (s *CaddieService) ListClubs(ctx context.Context, req *connect.Request[ListClubsRequest]) (*connect.Response[ListClubsResponse], error) {
	clubs := s.repo.Clubs()
	slog.Debug("ListClubs", "count", len(clubs))
	return connect.NewResponse(&ListClubsResponse{Clubs: toClubs(clubs)}), nil
}

// CreateClub adds a club to the bag.
func (s *CaddieService) CreateClub(ctx context.Context, req *connect.Request[CreateClubRequest]) (*connect.Response[CreateClubResponse], error) {
	slog.Info("CreateClub request received", "name", req.Msg.Name, "yardage", req.Msg.Yardage)

	club, err := s.repo.CreateClub(ctx, req.Msg.Name, req.Msg.Yardage)
	if err != nil {
		slog.Warn("CreateClub rejected", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&CreateClubResponse{Club: toClub(club)}), nil
}

// GetClubStats returns the summary and per-course breakdown of one club.
func (s *CaddieService) GetClubStats(ctx context.Context, req *connect.Request[GetClubStatsRequest]) (*connect.Response[GetClubStatsResponse], error) {
	club, ok := s.repo.Club(req.Msg.ClubID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("club not found: %s", req.Msg.ClubID))
	}

	summary := stats.Summarize(club)
	byCourse := stats.ByCourse(club)

	resp := &GetClubStatsResponse{
		ClubID:         club.ID,
		AverageYardage: summary.AverageYardage,
		ShotCount:      summary.ShotCount,
		LongestYards:   summary.Longest,
		ShortestYards:  summary.Shortest,
		ByCourse:       make([]CourseAverage, len(byCourse)),
	}
	for i, c := range byCourse {
		resp.ByCourse[i] = CourseAverage{
			Course:         c.Course,
			AverageYardage: c.AverageYardage,
			ShotCount:      c.ShotCount,
		}
	}
	return connect.NewResponse(resp), nil
}

// DeleteShot removes one shot from a club. Deleting a shot that does not
// exist succeeds with deleted=false.
func (s *CaddieService) DeleteShot(ctx context.Context, req *connect.Request[DeleteShotRequest]) (*connect.Response[DeleteShotResponse], error) {
	slog.Info("DeleteShot request received", "club_id", req.Msg.ClubID, "date", req.Msg.Shot.Date)

	club, deleted, err := s.repo.DeleteShot(ctx, req.Msg.ClubID, fromShot(req.Msg.Shot))
	if err != nil {
		slog.Error("DeleteShot failed", "club_id", req.Msg.ClubID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&DeleteShotResponse{Deleted: deleted, Club: toClub(club)}), nil
}

// ListCourses returns the saved course names.
func (s *CaddieService) ListCourses(ctx context.Context, req *connect.Request[ListCoursesRequest]) (*connect.Response[ListCoursesResponse], error) {
	return connect.NewResponse(&ListCoursesResponse{Courses: s.repo.Courses()}), nil
}

// AddCourse saves a course name. Empty and duplicate names are ignored.
func (s *CaddieService) AddCourse(ctx context.Context, req *connect.Request[AddCourseRequest]) (*connect.Response[AddCourseResponse], error) {
	added, err := s.repo.AddCourse(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("AddCourse failed", "name", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddCourseResponse{Added: added, Courses: s.repo.Courses()}), nil
}

// OpenSheet resolves a sheet against the current repository state.
func (s *CaddieService) OpenSheet(ctx context.Context, req *connect.Request[OpenSheetRequest]) (*connect.Response[OpenSheetResponse], error) {
	var sheet shell.Sheet
	switch shell.Kind(req.Msg.Kind) {
	case shell.KindAddClub:
		sheet = shell.AddClub{}
	case shell.KindRecordShot:
		sheet = shell.RecordShot{}
	case shell.KindShotList:
		sheet = shell.ShotList{ClubID: req.Msg.ClubID}
	case shell.KindShotDetail:
		if req.Msg.Shot == nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("shot required for %s", shell.KindShotDetail))
		}
		sheet = shell.ShotDetail{ClubID: req.Msg.ClubID, Shot: fromShot(*req.Msg.Shot)}
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown sheet kind %q", req.Msg.Kind))
	}

	view, err := shell.Resolve(sheet, s.repo)
	if err != nil {
		slog.Warn("OpenSheet failed", "sheet", sheet.ID(), "error", err)
		return nil, toConnectError(err)
	}

	resp := &OpenSheetResponse{
		SheetID: view.SheetID,
		Kind:    string(view.Kind),
		Courses: view.Courses,
	}
	if view.Club != nil {
		club := toClub(*view.Club)
		resp.Club = &club
	}
	if view.Shot != nil {
		shot := toShot(*view.Shot)
		resp.Shot = &shot
	}
	if view.Clubs != nil {
		resp.Clubs = toClubs(view.Clubs)
	}
	return connect.NewResponse(resp), nil
}
