package score

import "time"

type Vote struct {
	ImageID int64
	UserID  int64
	Score   int
}

// SetEvent records userID's vote on an image. A zero score removes the vote.
type SetEvent struct {
	ImageID int64
	UserID  int64
	Score   int
}

func (*SetEvent) EventName() string { return "numeric_score_set" }

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

type Ranked struct {
	ImageID int64
	Score   int
}

type PopularQuery struct {
	Period Period
	// Zero fields default to today's date.
	Day, Month, Year int
	Limit            int
}

type PopularPage struct {
	Period   Period
	Title    string
	Start    time.Time
	Previous time.Time
	Next     time.Time
	Posts    []Ranked
}
