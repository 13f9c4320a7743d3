package note

import "time"

type Geometry struct {
	X1     int `json:"x1"`
	Y1     int `json:"y1"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

type Note struct {
	ID      int64
	ImageID int64
	UserID  int64
	UserIP  string
	Date    time.Time
	Enabled bool
	Geometry
	Text string
}

// History is one revision of a note. ReviewID counts revisions from 1.
type History struct {
	NoteID   int64
	ReviewID int
	ImageID  int64
	UserID   int64
	UserIP   string
	Date     time.Time
	Enabled  bool
	Geometry
	Text string
}

type Request struct {
	ID      int64
	ImageID int64
	UserID  int64
	Date    time.Time
}

type Input struct {
	NoteID  int64
	ImageID int64
	Geometry
	Text string
}

type ImagePage struct {
	ImageIDs   []int64
	Page       int
	TotalPages int
}

type HistoryPage struct {
	Histories  []History
	Page       int
	TotalPages int
}

// HistoryFilter narrows a history listing; zero fields match everything.
type HistoryFilter struct {
	NoteID  int64
	ImageID int64
}
