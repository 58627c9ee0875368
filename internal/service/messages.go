package service

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Shot is the wire form of a recorded shot. Distances are always yards.
type Shot struct {
	DistanceYards float64     `json:"distance_yards"`
	Source        string      `json:"source"`
	Date          string      `json:"date"`
	Course        string      `json:"course,omitempty"`
	Hole          int         `json:"hole,omitempty"`
	ShotNumber    int         `json:"shot_number,omitempty"`
	Start         *Coordinate `json:"start,omitempty"`
}

// Club is the wire form of a club with its derived statistics.
type Club struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Yardage        int     `json:"yardage,omitempty"`
	AverageYardage int     `json:"average_yardage"`
	ShotCount      int     `json:"shot_count"`
	LongestYards   float64 `json:"longest_yards"`
	ShortestYards  float64 `json:"shortest_yards"`
	Shots          []Shot  `json:"shots"`
}

// CourseAverage is a club's average on one course.
type CourseAverage struct {
	Course         string `json:"course"`
	AverageYardage int    `json:"average_yardage"`
	ShotCount      int    `json:"shot_count"`
}

type ListClubsRequest struct{}

type ListClubsResponse struct {
	Clubs []Club `json:"clubs"`
}

type CreateClubRequest struct {
	Name    string `json:"name"`
	Yardage string `json:"yardage,omitempty"`
}

type CreateClubResponse struct {
	Club Club `json:"club"`
}

type GetClubStatsRequest struct {
	ClubID string `json:"club_id"`
}

type GetClubStatsResponse struct {
	ClubID         string          `json:"club_id"`
	AverageYardage int             `json:"average_yardage"`
	ShotCount      int             `json:"shot_count"`
	LongestYards   float64         `json:"longest_yards"`
	ShortestYards  float64         `json:"shortest_yards"`
	ByCourse       []CourseAverage `json:"by_course"`
}

type DeleteShotRequest struct {
	ClubID string `json:"club_id"`
	Shot   Shot   `json:"shot"`
}

type DeleteShotResponse struct {
	Deleted bool `json:"deleted"`
	Club    Club `json:"club"`
}

type ListCoursesRequest struct{}

type ListCoursesResponse struct {
	Courses []string `json:"courses"`
}

type AddCourseRequest struct {
	Name string `json:"name"`
}

type AddCourseResponse struct {
	Added   bool     `json:"added"`
	Courses []string `json:"courses"`
}

type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UpdateLocationResponse struct {
	Accepted bool `json:"accepted"`
}

type ClearLocationRequest struct{}

type ClearLocationResponse struct{}

// Recording is the state of an open recording session.
type Recording struct {
	SessionID      string      `json:"session_id"`
	Mode           string      `json:"mode"`
	ClubID         string      `json:"club_id,omitempty"`
	Course         string      `json:"course,omitempty"`
	FrontNine      bool        `json:"front_nine"`
	Holes          []int       `json:"holes"`
	Hole           int         `json:"hole"`
	ShotNumber     int         `json:"shot_number"`
	StartPin       *Coordinate `json:"start_pin,omitempty"`
	EndPin         *Coordinate `json:"end_pin,omitempty"`
	HasDistance    bool        `json:"has_distance"`
	DistanceYards  float64     `json:"distance_yards,omitempty"`
	DistanceSource string      `json:"distance_source,omitempty"`
}

type StartRecordingRequest struct{}

type RecordingResponse struct {
	Recording Recording `json:"recording"`
}

type SetDistanceModeRequest struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

type SetManualDistanceRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// Pin names accepted by DropPin.
const (
	PinStart = "start"
	PinEnd   = "end"
)

type DropPinRequest struct {
	SessionID string `json:"session_id"`
	Pin       string `json:"pin"`
}

type DropPinResponse struct {
	Dropped   bool      `json:"dropped"`
	Recording Recording `json:"recording"`
}

// UpdateRecordingRequest changes the shot context. Nil fields are left as they are.
type UpdateRecordingRequest struct {
	SessionID  string  `json:"session_id"`
	ClubID     *string `json:"club_id,omitempty"`
	Course     *string `json:"course,omitempty"`
	FrontNine  *bool   `json:"front_nine,omitempty"`
	Hole       *int    `json:"hole,omitempty"`
	ShotNumber *int    `json:"shot_number,omitempty"`
}

type SaveShotRequest struct {
	SessionID string `json:"session_id"`
}

type SaveShotResponse struct {
	Saved bool  `json:"saved"`
	Club  *Club `json:"club,omitempty"`
}

type CancelRecordingRequest struct {
	SessionID string `json:"session_id"`
}

type CancelRecordingResponse struct {
	Discarded bool `json:"discarded"`
}

type OpenSheetRequest struct {
	Kind   string `json:"kind"`
	ClubID string `json:"club_id,omitempty"`
	Shot   *Shot  `json:"shot,omitempty"`
}

type OpenSheetResponse struct {
	SheetID string   `json:"sheet_id"`
	Kind    string   `json:"kind"`
	Club    *Club    `json:"club,omitempty"`
	Shot    *Shot    `json:"shot,omitempty"`
	Clubs   []Club   `json:"clubs,omitempty"`
	Courses []string `json:"courses,omitempty"`
}
