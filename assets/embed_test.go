package assets

import "testing"

func TestDecodeEmbeddedImages(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"player.png", 576, 70},
		{"rocks.png", 128, 64},
		{"ball.png", 16, 16},
		{"paddle.png", 100, 20},
		{"assets/gamebg.png", 800, 600},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := DecodeImage(tc.name)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tc.w || b.Dy() != tc.h {
				t.Fatalf("expected %dx%d, got %v", tc.w, tc.h, b)
			}
		})
	}
}

func TestEmbeddedSounds(t *testing.T) {
	for _, name := range []string{"break.wav", "wall.wav", "hit1.wav", "hit2.wav", "paddle.wav"} {
		b, err := LoadFile(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(b) < 44 || string(b[:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
			t.Fatalf("%s is not a wav file", name)
		}
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"assets/ball.png", "ball.png"},
		{"ball.png", "ball.png"},
		{"/home/x/assets/ball.png", "ball.png"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := cleanAssetPath(tc.in); got != tc.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
