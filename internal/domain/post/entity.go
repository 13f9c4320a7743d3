package post

import (
	"time"

	"gallery/internal/domain/media"
)

type Post struct {
	ID           int64
	Hash         string
	Filename     string
	Mime         string
	Width        int
	Height       int
	Filesize     int64
	Posted       time.Time
	NumericScore int
	Notes        int
}

func (p Post) Media() media.Image {
	return media.Image{
		ID:     p.ID,
		Hash:   p.Hash,
		Mime:   p.Mime,
		Width:  p.Width,
		Height: p.Height,
	}
}
