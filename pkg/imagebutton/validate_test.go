package imagebutton

import "testing"

func TestClassify(t *testing.T) {
	allowed := []string{"jpg", "jpeg", "png"}

	tests := []struct {
		name    string
		file    *File
		maxSize int64
		want    Verdict
	}{
		{
			name:    "nil file",
			file:    nil,
			maxSize: DefaultMaxFileSize,
			want:    NoFile,
		},
		{
			name:    "simple valid jpg",
			file:    &File{Name: "photo.jpg", Size: 1000},
			maxSize: DefaultMaxFileSize,
			want:    Valid,
		},
		{
			name:    "uppercase extension accepted",
			file:    &File{Name: "Photo.PNG", Size: 1000},
			maxSize: DefaultMaxFileSize,
			want:    Valid,
		},
		{
			name:    "gif rejected",
			file:    &File{Name: "photo.gif", Size: 1000},
			maxSize: DefaultMaxFileSize,
			want:    BadExtension,
		},
		{
			name:    "size at boundary accepted",
			file:    &File{Name: "big.png", Size: 5_242_880},
			maxSize: 5_242_880,
			want:    Valid,
		},
		{
			name:    "size above boundary rejected",
			file:    &File{Name: "big.png", Size: 6_000_000},
			maxSize: 5_242_880,
			want:    TooBig,
		},
		{
			name:    "extension checked before size",
			file:    &File{Name: "huge.tiff", Size: 99_000_000},
			maxSize: 5_242_880,
			want:    BadExtension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.file, tt.maxSize, allowed)
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchesExtension_DotEntries(t *testing.T) {
	// Entries are literal suffixes: dots must match as dots.
	if !MatchesExtension("backup.tar.gz", []string{"tar.gz"}) {
		t.Error("tar.gz entry should match backup.tar.gz")
	}
	if MatchesExtension("backup-targz", []string{"tar.gz"}) {
		t.Error("tar.gz entry must not match targz")
	}
}

func TestMatchesExtension_CaseInsensitiveBothWays(t *testing.T) {
	if !MatchesExtension("shot.png", []string{"PNG"}) {
		t.Error("uppercase allow-list entry should match lowercase name")
	}
	if !MatchesExtension("SHOT.PNG", []string{"png"}) {
		t.Error("lowercase allow-list entry should match uppercase name")
	}
}

func TestVerdict_Code(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    Code
	}{
		{NoFile, CodeNoFile},
		{BadExtension, CodeBadExtension},
		{TooBig, CodeTooBig},
		{Valid, 0},
	}
	for _, tt := range tests {
		if got := tt.verdict.Code(); got != tt.want {
			t.Errorf("%v.Code() = %d, want %d", tt.verdict, got, tt.want)
		}
	}
}

func TestCode_Message(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNoFile, "No file selected"},
		{CodeBadExtension, "Bad file type"},
		{CodeTooBig, "Too big"},
		{CodeUploading, "Error while uploading"},
		{Code(99), "Unknown error"},
	}
	for _, tt := range tests {
		if got := tt.code.Message(); got != tt.want {
			t.Errorf("Code(%d).Message() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestInternalCode(t *testing.T) {
	code, ok := InternalCode(NewError(CodeTooBig))
	if !ok || code != CodeTooBig {
		t.Errorf("InternalCode(internal) = %d, %v; want 3, true", code, ok)
	}

	if _, ok := InternalCode(errUpstream); ok {
		t.Error("InternalCode should not match upstream errors")
	}
	if _, ok := InternalCode(nil); ok {
		t.Error("InternalCode(nil) should report false")
	}
}
