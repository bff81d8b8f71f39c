package analyze

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/engageiq/go-engage/pkg/track"
)

// HaarConfig configures the cascade-based person detector.
type HaarConfig struct {
	// CascadePath is the XML cascade file (frontal face by default).
	CascadePath string

	// ScaleFactor is the pyramid scale step.
	ScaleFactor float64

	// MinNeighbors controls detection strictness.
	MinNeighbors int

	// MinSize is the smallest face side in pixels.
	MinSize int
}

// DefaultHaarConfig returns the standard cascade parameters.
func DefaultHaarConfig() HaarConfig {
	return HaarConfig{
		CascadePath:  "haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	}
}

// HaarDetector finds people by their faces using an OpenCV Haar cascade.
// Cascades report no per-detection score, so every box carries a fixed
// confidence of 0.85.
type HaarDetector struct {
	cascade gocv.CascadeClassifier
	cfg     HaarConfig

	mu     sync.Mutex // protects cascade on Detect and Close
	closed bool
}

// NewHaar loads the cascade file and returns a ready detector.
func NewHaar(cfg HaarConfig) (*HaarDetector, error) {
	if _, err := os.Stat(cfg.CascadePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("cascade file not found: %s", cfg.CascadePath)
	}

	cascade := gocv.NewCascadeClassifier()
	if !cascade.Load(cfg.CascadePath) {
		cascade.Close()
		return nil, fmt.Errorf("load cascade: %s", cfg.CascadePath)
	}

	return &HaarDetector{cascade: cascade, cfg: cfg}, nil
}

// Detect finds faces in the JPEG image and returns one box per face.
func (d *HaarDetector) Detect(ctx context.Context, jpeg []byte) ([]track.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if len(jpeg) == 0 {
		return nil, ErrEmptyImage
	}

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, ErrEmptyImage
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	rects := d.cascade.DetectMultiScaleWithParams(
		gray,
		d.cfg.ScaleFactor,
		d.cfg.MinNeighbors,
		0,
		image.Pt(d.cfg.MinSize, d.cfg.MinSize),
		image.Pt(0, 0),
	)

	boxes := make([]track.Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, track.Box{
			X1:         r.Min.X,
			Y1:         r.Min.Y,
			X2:         r.Max.X,
			Y2:         r.Max.Y,
			Confidence: 0.85,
		})
	}
	return boxes, nil
}

// Close releases the cascade.
func (d *HaarDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.cascade.Close()
}

var _ PersonDetector = (*HaarDetector)(nil)
