package web

import (
	"image"
	"image/png"
	"net/http"
	"net/url"
	"testing"
)

func getFrame(t *testing.T, base string, q url.Values) (*http.Response, image.Image) {
	t.Helper()
	resp, err := http.Get(base + "/api/frame.png?" + q.Encode())
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return resp, img
}

func TestHandleFrameSize(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name         string
		query        url.Values
		wantW, wantH int
	}{
		{"defaults capped", url.Values{}, 400, 300},
		{"logical", url.Values{"width": {"40"}, "height": {"30"}}, 40, 30},
		{"dpr 2", url.Values{"width": {"40"}, "height": {"30"}, "dpr": {"2"}}, 80, 60},
		{"dpr capped at 2", url.Values{"width": {"40"}, "height": {"30"}, "dpr": {"3"}}, 80, 60},
		{"fractional dpr", url.Values{"width": {"40"}, "height": {"30"}, "dpr": {"1.5"}}, 60, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, img := getFrame(t, ts.URL, tt.query)
			if img == nil {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q", ct)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if resp.Header.Get("X-Aurora-Dots") == "" {
				t.Error("missing dot count header")
			}
		})
	}
}

func TestHandleFrameBadParams(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name  string
		query url.Values
	}{
		{"width not a number", url.Values{"width": {"wide"}}},
		{"width zero", url.Values{"width": {"0"}}},
		{"width over max", url.Values{"width": {"401"}}},
		{"height negative", url.Values{"height": {"-5"}}},
		{"dpr zero", url.Values{"dpr": {"0"}}},
		{"dpr NaN", url.Values{"dpr": {"NaN"}}},
		{"time negative", url.Values{"time": {"-1"}}},
		{"theme unknown", url.Values{"theme": {"sepia"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := getFrame(t, ts.URL, tt.query)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func meanLuma(img image.Image) float64 {
	b := img.Bounds()
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			sum += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bl)) / 0xffff
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

func TestHandleFrameTheme(t *testing.T) {
	_, ts := newTestServer(t)

	size := url.Values{"width": {"120"}, "height": {"80"}, "time": {"3.5"}}
	light := url.Values{"theme": {"light"}}
	for k, v := range size {
		light[k] = v
	}

	_, darkImg := getFrame(t, ts.URL, size)
	_, lightImg := getFrame(t, ts.URL, light)
	if darkImg == nil || lightImg == nil {
		t.Fatal("frame request failed")
	}

	dl, ll := meanLuma(darkImg), meanLuma(lightImg)
	if dl > 0.5 || ll < 0.5 {
		t.Errorf("mean luma dark=%.3f light=%.3f", dl, ll)
	}
}

func TestParseFrameRequestDefaults(t *testing.T) {
	s, _ := newTestServer(t)

	req, err := s.parseFrameRequest(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	want := FrameRequest{Width: 400, Height: 300, DPR: 1, Dark: true}
	if req != want {
		t.Errorf("defaults = %+v, want %+v", req, want)
	}
}
