package media

import "errors"

// ErrNoEngine is returned when no listener claimed a resize request.
var ErrNoEngine = errors.New("no media engine handled the resize request")

// ResizeEvent asks the media engine named by Engine to transform one file.
// The engine fills in the result fields.
type ResizeEvent struct {
	Engine          string
	InputPath       string
	InputMime       string
	OutputPath      string
	TargetWidth     int
	TargetHeight    int
	Fit             FitMode
	OutputMime      string
	AlphaColor      string
	Quality         int
	KeepSource      bool
	TolerateFailure bool

	Handled      bool
	Err          error
	OutputWidth  int
	OutputHeight int
}

func NewResizeEvent(
	engine string,
	inputPath string,
	inputMime string,
	outputPath string,
	targetWidth int,
	targetHeight int,
	fit FitMode,
	outputMime string,
	alphaColor string,
	quality int,
	keepSource bool,
	tolerateFailure bool,
) *ResizeEvent {
	return &ResizeEvent{
		Engine:          engine,
		InputPath:       inputPath,
		InputMime:       inputMime,
		OutputPath:      outputPath,
		TargetWidth:     targetWidth,
		TargetHeight:    targetHeight,
		Fit:             fit,
		OutputMime:      outputMime,
		AlphaColor:      alphaColor,
		Quality:         quality,
		KeepSource:      keepSource,
		TolerateFailure: tolerateFailure,
	}
}

func (*ResizeEvent) EventName() string { return "media_resize" }

// Result is the outcome of a dispatched request from the caller's side.
func (e *ResizeEvent) Result() error {
	if e.Err != nil {
		return e.Err
	}
	if !e.Handled {
		return ErrNoEngine
	}
	return nil
}
