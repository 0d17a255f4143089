package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAllowlistClassify(t *testing.T) {
	allow := DefaultAllowlist()

	tests := []struct {
		name     string
		path     string
		expected Kind
	}{
		{"JPEG", "photo.jpg", KindImage},
		{"Uppercase JPEG", "PHOTO.JPG", KindImage},
		{"PNG", "shot.png", KindImage},
		{"RAW still", "IMG_0001.CR2", KindImage},
		{"HEIC", "phone.heic", KindImage},
		{"MP4", "clip.mp4", KindVideo},
		{"Uppercase MKV", "movie.MKV", KindVideo},
		{"Transport stream", "rec.m2ts", KindVideo},
		{"Text file", "notes.txt", KindOther},
		{"No extension", "README", KindOther},
		{"Full path", "/data/photos/trip.jpeg", KindImage},
		{"Multiple dots", "backup.2024.mp4", KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _ := allow.Classify(tt.path)
			if kind != tt.expected {
				t.Errorf("Classify(%q) = %v, expected %v", tt.path, kind, tt.expected)
			}
		})
	}
}

func TestAllowlistFromCSV(t *testing.T) {
	allow, err := AllowlistFromCSV(".JPG, png ,mp4,,")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		path     string
		expected Kind
	}{
		{"a.jpg", KindImage}, // custom set prefers the image side
		{"b.PNG", KindImage},
		{"c.mp4", KindImage},
		{"d.mkv", KindOther}, // built-in sets are fully replaced
		{"e.gif", KindOther},
	}

	for _, tt := range tests {
		kind, _ := allow.Classify(tt.path)
		if kind != tt.expected {
			t.Errorf("Classify(%q) = %v, expected %v", tt.path, kind, tt.expected)
		}
	}
}

func TestAllowlistFromCSVEmpty(t *testing.T) {
	for _, input := range []string{"", " , ,"} {
		if _, err := AllowlistFromCSV(input); err == nil {
			t.Errorf("AllowlistFromCSV(%q) expected error", input)
		}
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	files := map[string]Kind{
		"photo.jpg":        KindImage,
		"clip.MP4":         KindVideo,
		"notes.txt":        KindOther,
		"sub/movie.mkv":    KindVideo,
		"sub/deep/pic.PNG": KindImage,
	}
	for name := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tasks, err := Discover(root, DefaultAllowlist())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(tasks) != len(files) {
		t.Fatalf("Expected %d tasks (non-media files included), got %d", len(files), len(tasks))
	}

	for _, task := range tasks {
		rel, err := filepath.Rel(root, task.Path)
		if err != nil {
			t.Fatal(err)
		}
		rel = filepath.ToSlash(rel)
		expected, ok := files[rel]
		if !ok {
			t.Errorf("Unexpected task for %s", rel)
			continue
		}
		if task.Kind != expected {
			t.Errorf("Kind for %s = %v, expected %v", rel, task.Kind, expected)
		}
	}
}

func TestDiscoverEmptyTree(t *testing.T) {
	tasks, err := Discover(t.TempDir(), DefaultAllowlist())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected no tasks, got %d", len(tasks))
	}
}
