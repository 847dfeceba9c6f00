package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned metadata keyed by path.
type fakeReader struct {
	meta   map[string]*ImageMetadata
	panics map[string]bool
	reads  int
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		meta:   make(map[string]*ImageMetadata),
		panics: make(map[string]bool),
	}
}

func (r *fakeReader) ReadMetadata(path string) (*ImageMetadata, error) {
	r.reads++
	if r.panics[path] {
		panic("decoder blew up")
	}
	m, ok := r.meta[path]
	if !ok {
		return nil, errors.New("image: unknown format")
	}
	return m, nil
}

func proposedNames(entries []PreviewEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.ProposedName)
	}
	return names
}

func TestGeneratePreview_SequenceScenario(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{
		Mode:       ModeSequence,
		Prefix:     "Photo",
		StartIndex: 10,
		Padding:    3,
		Case:       CaseLower,
	}

	entries := p.GeneratePreview([]string{"/pics/img1.jpg", "/pics/img2.PNG"}, rules)

	want := []PreviewEntry{
		{SourcePath: "/pics/img1.jpg", OriginalName: "img1.jpg", ProposedName: "photo_010.jpg", Status: StatusOK},
		{SourcePath: "/pics/img2.PNG", OriginalName: "img2.PNG", ProposedName: "photo_011.png", Status: StatusOK},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("GeneratePreview() mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePreview_SequenceIgnoresInputOrder(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{Mode: ModeSequence, Prefix: "x", StartIndex: 5, Padding: 2}

	forward := p.GeneratePreview([]string{"/d/a.jpg", "/d/b.jpg", "/d/c.jpg", "/d/d.jpg"}, rules)
	shuffled := p.GeneratePreview([]string{"/d/c.jpg", "/d/a.jpg", "/d/d.jpg", "/d/b.jpg"}, rules)

	assert.Equal(t, []string{"x_05.jpg", "x_06.jpg", "x_07.jpg", "x_08.jpg"}, proposedNames(forward))
	assert.Equal(t, forward, shuffled)
}

func TestGeneratePreview_DoesNotMutateInput(t *testing.T) {
	p := New(nil, nil)
	files := []string{"/d/b.jpg", "/d/a.jpg"}

	p.GeneratePreview(files, DefaultRules())

	assert.Equal(t, []string{"/d/b.jpg", "/d/a.jpg"}, files)
}

func TestGeneratePreview_Idempotent(t *testing.T) {
	reader := newFakeReader()
	reader.meta["/d/a.jpg"] = &ImageMetadata{Width: 640, Height: 480}
	p := New(reader, nil)
	rules := RuleConfig{Mode: ModeMetadataResolution, Prefix: "img_", Padding: 2}
	files := []string{"/d/b.jpg", "/d/a.jpg"}

	first := p.GeneratePreview(files, rules)
	second := p.GeneratePreview(files, rules)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second preview differs (-first +second):\n%s", diff)
	}
}

func TestGeneratePreview_SequenceEmptyPrefixUsesParentDir(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{Mode: ModeSequence, Suffix: "-edit", StartIndex: 1, Padding: 0}

	entries := p.GeneratePreview([]string{"/home/me/Vacation/IMG_1.JPG"}, rules)

	require.Len(t, entries, 1)
	assert.Equal(t, "Vacation-edit_1.jpg", entries[0].ProposedName)
}

func TestGeneratePreview_SequenceCounterIsGlobalAcrossDirectories(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{Mode: ModeSequence, Prefix: "p", StartIndex: 1, Padding: 1}

	entries := p.GeneratePreview([]string{"/b/x.jpg", "/a/y.jpg"}, rules)

	assert.Equal(t, []string{"p_1.jpg", "p_2.jpg"}, proposedNames(entries))
	assert.Equal(t, "/a/y.jpg", entries[0].SourcePath)
}

func TestGeneratePreview_SequenceUnchangedStillCounts(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{Mode: ModeSequence, Prefix: "p", StartIndex: 1, Padding: 1}

	entries := p.GeneratePreview([]string{"/d/p_1.jpg", "/d/z.jpg"}, rules)

	require.Len(t, entries, 2)
	assert.Equal(t, StatusUnchanged, entries[0].Status)
	assert.Equal(t, "p_2.jpg", entries[1].ProposedName)
	assert.Equal(t, StatusOK, entries[1].Status)
}

func TestGeneratePreview_Regex(t *testing.T) {
	p := New(nil, nil)

	tests := []struct {
		name        string
		file        string
		pattern     string
		replacement string
		wantName    string
		wantStatus  Status
	}{
		{
			name:        "numbered group",
			file:        "/d/img1.jpg",
			pattern:     `img(\d+)`,
			replacement: `Picture-\1`,
			wantName:    "Picture-1.jpg",
			wantStatus:  StatusOK,
		},
		{
			name:        "named group",
			file:        "/d/IMG_2024.png",
			pattern:     `IMG_(?P<year>\d{4})`,
			replacement: `shot-\g<year>`,
			wantName:    "shot-2024.png",
			wantStatus:  StatusOK,
		},
		{
			name:        "extension is part of the target",
			file:        "/d/a.jpeg",
			pattern:     `\.jpeg$`,
			replacement: `.jpg`,
			wantName:    "a.jpg",
			wantStatus:  StatusOK,
		},
		{
			name:        "literal dollar in replacement",
			file:        "/d/price.txt",
			pattern:     `price`,
			replacement: `$5`,
			wantName:    "$5.txt",
			wantStatus:  StatusOK,
		},
		{
			name:        "no match leaves name unchanged",
			file:        "/d/holiday.jpg",
			pattern:     `img(\d+)`,
			replacement: `x`,
			wantName:    "holiday.jpg",
			wantStatus:  StatusUnchanged,
		},
		{
			name:        "empty pattern leaves name unchanged",
			file:        "/d/holiday.jpg",
			pattern:     "",
			replacement: "x",
			wantName:    "holiday.jpg",
			wantStatus:  StatusUnchanged,
		},
		{
			name:        "malformed pattern",
			file:        "/d/holiday.JPG",
			pattern:     `img(\d+`,
			replacement: `x`,
			wantName:    "[regex error].jpg",
			wantStatus:  StatusError,
		},
		{
			name:        "reference to a missing group number",
			file:        "/d/img1.jpg",
			pattern:     `img(\d+)`,
			replacement: `x\2`,
			wantName:    "[regex error].jpg",
			wantStatus:  StatusError,
		},
		{
			name:        "reference to a missing group name",
			file:        "/d/img1.jpg",
			pattern:     `img(\d+)`,
			replacement: `\g<nope>`,
			wantName:    "[regex error].jpg",
			wantStatus:  StatusError,
		},
		{
			name:        "unknown letter escape",
			file:        "/d/img1.jpg",
			pattern:     `img(\d+)`,
			replacement: `a\d`,
			wantName:    "[regex error].jpg",
			wantStatus:  StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := RuleConfig{Mode: ModeRegex, RegexPattern: tt.pattern, RegexReplacement: tt.replacement}
			entries := p.GeneratePreview([]string{tt.file}, rules)

			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantName, entries[0].ProposedName)
			assert.Equal(t, tt.wantStatus, entries[0].Status)
		})
	}
}

func TestGeneratePreview_MetadataModes(t *testing.T) {
	captured := time.Date(2023, 7, 14, 9, 5, 3, 0, time.UTC)
	tagged := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	modified := time.Date(2021, 12, 31, 23, 59, 58, 0, time.UTC)

	reader := newFakeReader()
	reader.meta["/d/a.jpg"] = &ImageMetadata{
		Width: 4000, Height: 3000,
		CapturedAt: captured, TaggedAt: tagged, ModTime: modified,
		CameraModel: "Canon EOS 5D Mark IV",
	}
	reader.meta["/d/b.jpg"] = &ImageMetadata{
		Width: 800, Height: 600,
		TaggedAt: tagged, ModTime: modified,
		CameraModel: "iPhone 12 (Pro)",
	}
	reader.meta["/d/c.png"] = &ImageMetadata{
		Width: 16, Height: 16,
		ModTime: modified,
	}

	p := New(reader, nil)
	files := []string{"/d/c.png", "/d/a.jpg", "/d/b.jpg"}

	tests := []struct {
		name  string
		rules RuleConfig
		want  []string
	}{
		{
			name:  "resolution",
			rules: RuleConfig{Mode: ModeMetadataResolution, Prefix: "r", StartIndex: 1, Padding: 2},
			want:  []string{"r4000x3000_01.jpg", "r800x600_02.jpg", "r16x16_03.png"},
		},
		{
			name:  "date falls back from capture to tag to mtime",
			rules: RuleConfig{Mode: ModeMetadataDate, Suffix: "_x", StartIndex: 0, Padding: 1},
			want:  []string{"20230714_090503_x_0.jpg", "20220102_030405_x_1.jpg", "20211231_235958_x_2.png"},
		},
		{
			name:  "model is sanitized and defaulted",
			rules: RuleConfig{Mode: ModeMetadataModel, StartIndex: 1, Padding: 1},
			want:  []string{"Canon_EOS_5D_Mark_IV_1.jpg", "iPhone_12_Pro_2.jpg", "UnknownCamera_3.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := p.GeneratePreview(files, tt.rules)
			assert.Equal(t, tt.want, proposedNames(entries))
			for _, e := range entries {
				assert.Equal(t, StatusOK, e.Status, e.SourcePath)
			}
		})
	}
}

func TestGeneratePreview_UnreadableImage(t *testing.T) {
	reader := newFakeReader()
	reader.meta["/d/a.jpg"] = &ImageMetadata{Width: 10, Height: 20}
	reader.meta["/d/c.jpg"] = &ImageMetadata{Width: 30, Height: 40}
	p := New(reader, nil)
	rules := RuleConfig{Mode: ModeMetadataResolution, StartIndex: 1, Padding: 1, Case: CaseUpper}

	entries := p.GeneratePreview([]string{"/d/a.jpg", "/d/b.JPG", "/d/c.jpg"}, rules)

	require.Len(t, entries, 3)
	assert.Equal(t, "10X20_1.JPG", entries[0].ProposedName)

	assert.Equal(t, StatusError, entries[1].Status)
	assert.Equal(t, "[unreadable image].jpg", entries[1].ProposedName)
	assert.Contains(t, entries[1].Message, "unreadable image")
	assert.False(t, entries[1].Eligible())

	// the unreadable file consumed counter value 2
	assert.Equal(t, "30X40_3.JPG", entries[2].ProposedName)
	assert.Equal(t, StatusOK, entries[2].Status)
}

func TestGeneratePreview_MetadataWithoutReader(t *testing.T) {
	p := New(nil, nil)

	entries := p.GeneratePreview([]string{"/d/a.png"}, RuleConfig{Mode: ModeMetadataDate})

	require.Len(t, entries, 1)
	assert.Equal(t, StatusError, entries[0].Status)
	assert.Equal(t, "[unreadable image].png", entries[0].ProposedName)
}

func TestGeneratePreview_PanicBecomesErrorEntry(t *testing.T) {
	reader := newFakeReader()
	reader.panics["/d/a.jpg"] = true
	reader.meta["/d/b.jpg"] = &ImageMetadata{Width: 1, Height: 1}
	p := New(reader, nil)

	entries := p.GeneratePreview([]string{"/d/a.jpg", "/d/b.jpg"}, RuleConfig{Mode: ModeMetadataResolution, Padding: 1})

	require.Len(t, entries, 2)
	assert.Equal(t, StatusError, entries[0].Status)
	assert.Equal(t, "decoder blew up", entries[0].Message)
	assert.Equal(t, StatusOK, entries[1].Status)
}

func TestGeneratePreview_UnknownMode(t *testing.T) {
	p := New(nil, nil)

	entries := p.GeneratePreview([]string{"/d/a.png"}, RuleConfig{Mode: "reverse"})

	require.Len(t, entries, 1)
	assert.Equal(t, StatusError, entries[0].Status)
}

func TestGeneratePreview_PostProcessing(t *testing.T) {
	p := New(nil, nil)

	tests := []struct {
		name  string
		rules RuleConfig
		file  string
		want  string
	}{
		{
			name:  "web safe replaces spaces",
			rules: RuleConfig{Mode: ModeSequence, Prefix: "My Trip", Padding: 2, WebSafe: true},
			file:  "/d/a.jpg",
			want:  "My_Trip_00.jpg",
		},
		{
			name:  "upper then web safe",
			rules: RuleConfig{Mode: ModeRegex, RegexPattern: "a", RegexReplacement: "b c", Case: CaseUpper, WebSafe: true},
			file:  "/d/a.jpg",
			want:  "B_C.JPG",
		},
		{
			name:  "none keeps case",
			rules: RuleConfig{Mode: ModeSequence, Prefix: "MiXeD", Case: CaseNone},
			file:  "/d/a.jpg",
			want:  "MiXeD_0.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := p.GeneratePreview([]string{tt.file}, tt.rules)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].ProposedName)
		})
	}
}

func TestGeneratePreview_CaseOnlyChangeIsOK(t *testing.T) {
	p := New(nil, nil)
	rules := RuleConfig{Mode: ModeRegex, RegexPattern: "^$", Case: CaseLower}

	entries := p.GeneratePreview([]string{"/d/IMG.JPG", "/d/done.jpg"}, rules)

	require.Len(t, entries, 2)
	assert.Equal(t, "img.jpg", entries[0].ProposedName)
	assert.Equal(t, StatusOK, entries[0].Status)
	assert.Equal(t, StatusUnchanged, entries[1].Status)
}

func TestPreviewEntry_ProposedPath(t *testing.T) {
	e := PreviewEntry{SourcePath: "/d/sub/a.jpg", ProposedName: "b.jpg"}
	assert.Equal(t, "/d/sub/b.jpg", e.ProposedPath())
}
