package frameselect

import (
	"image"
	"image/color"

	"flipgrid/internal/domain"
)

// grayscale converts a frame to 8-bit luma for thresholding.
func grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// otsuThreshold picks the binarization threshold maximizing between-class
// variance over the luma histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	var threshold uint8
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(t)
		}
	}
	return threshold
}

// foregroundRegion returns the bounding box of the largest connected
// foreground component of the Otsu-binarized frame. ok is false when the
// mask has no foreground at all.
func foregroundRegion(gray *image.Gray) (image.Rectangle, bool) {
	threshold := otsuThreshold(gray)
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	visited := make([]bool, w*h)
	at := func(x, y int) bool {
		return gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y > threshold
	}

	var best image.Rectangle
	bestArea := 0
	var stack [][2]int

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || !at(sx, sy) {
				continue
			}
			// Flood-fill one component, tracking extent and pixel count.
			minX, minY, maxX, maxY := sx, sy, sx, sy
			count := 0
			stack = append(stack[:0], [2]int{sx, sy})
			visited[sy*w+sx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := p[0], p[1]
				count++
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := x+d[0], y+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if visited[ny*w+nx] || !at(nx, ny) {
						continue
					}
					visited[ny*w+nx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}
			if count > bestArea {
				bestArea = count
				best = image.Rect(bounds.Min.X+minX, bounds.Min.Y+minY, bounds.Min.X+maxX+1, bounds.Min.Y+maxY+1)
			}
		}
	}
	if bestArea == 0 {
		return image.Rectangle{}, false
	}
	return best, true
}

// scoreFrame computes the frame-quality signals for a frame whose detection
// confidence is already known. Centering rewards the foreground bounding
// box sitting near the image center; size rewards it filling the frame.
func scoreFrame(img image.Image, confidence float64) (domain.FrameScore, image.Rectangle) {
	bounds := img.Bounds()
	width, height := float64(bounds.Dx()), float64(bounds.Dy())

	gray := grayscale(img)
	region, ok := foregroundRegion(gray)
	if !ok {
		return domain.FrameScore{Confidence: confidence}, image.Rectangle{}
	}

	centerX := float64(bounds.Min.X) + width/2
	centerY := float64(bounds.Min.Y) + height/2
	regionCX := float64(region.Min.X) + float64(region.Dx())/2
	regionCY := float64(region.Min.Y) + float64(region.Dy())/2

	centering := 1 - (abs(centerX-regionCX)/width+abs(centerY-regionCY)/height)/2
	size := float64(region.Dx()) * float64(region.Dy()) / (width * height)

	return domain.FrameScore{
		Confidence: confidence,
		Centering:  centering,
		Size:       size,
		Composite:  domain.CompositeScore(confidence, centering, size),
	}, region
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
