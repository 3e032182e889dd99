package common

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/blacktop/go-termimg"
)

var imageClient = &http.Client{Timeout: 10 * time.Second}

// FetchImage downloads and decodes an image.
func FetchImage(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	resp, err := imageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// FitCells returns the cell size an image of the given pixel bounds occupies
// when scaled into maxWidth x maxHeight cells with halfblocks.
func FitCells(bounds image.Rectangle, maxWidth, maxHeight int) (int, int, error) {
	imgW, imgH := float64(bounds.Dx()), float64(bounds.Dy())
	if imgW == 0 || imgH == 0 {
		return 0, 0, fmt.Errorf("invalid image dimensions")
	}

	ar := imgW / imgH
	w := float64(maxWidth)
	h := w / (ar * 2.0) // halfblocks pack two pixel rows per cell
	if h > float64(maxHeight) {
		h = float64(maxHeight)
		w = ar * h * 2.0
	}
	return max(int(w), 1), max(int(h), 1), nil
}

// RenderAvatar fetches the avatar at url and returns a terminal-renderable
// string bounded by maxWidth x maxHeight cells.
func RenderAvatar(ctx context.Context, url string, maxWidth, maxHeight int) (string, error) {
	img, err := FetchImage(ctx, url)
	if err != nil {
		return "", err
	}

	cellW, cellH, err := FitCells(img.Bounds(), maxWidth, maxHeight)
	if err != nil {
		return "", err
	}

	ti := termimg.New(img)
	ti.Width(cellW).Height(cellH).Scale(termimg.ScaleFit).Protocol(termimg.Halfblocks)

	rendered, err := ti.Render()
	if err != nil {
		return "", fmt.Errorf("render image: %w", err)
	}
	return rendered, nil
}
