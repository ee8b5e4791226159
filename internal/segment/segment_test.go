package segment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/confmatch/pkg/types"
)

const samplePaper = `IEEE Transactions Preprint
Reinforcement Learning-Based PI Control Strategy for Single-Phase Voltage Source PWM Rectifier
Wei Zhang, Li Chen, School of Electrical Engineering, Example University
zhangwei@example.edu.cn
2024
Abstract
Single-phase PWM rectifiers suffer from slow dynamic response under
conventional PI control. This paper proposes a reinforcement learning
based tuning scheme that adapts controller gains online.
Keywords: Reinforcement Learning, PI Control, PWM Rectifier, 2024
Introduction
Power conversion systems are everywhere.
Conclusion
The proposed scheme improves settling time by 31%.
References
[1] Some reference.`

func TestSegmentTitleLineScan(t *testing.T) {
	meta := Segment(Input{Text: samplePaper, Filename: "paper.pdf"}, types.SegmentConfig{})

	want := "Reinforcement Learning-Based PI Control Strategy for Single-Phase Voltage Source PWM Rectifier"
	if meta.Title != want {
		t.Errorf("Title = %q, want %q", meta.Title, want)
	}
	if meta.TitleSource != "line-scan" {
		t.Errorf("TitleSource = %q, want line-scan", meta.TitleSource)
	}
}

func TestSegmentTitleSkipsMetadataLines(t *testing.T) {
	// The email, affiliation, and bare-year lines directly above the
	// abstract must all be skipped; the author line carries none of those
	// markers, so only lines below the authors are filtered here.
	text := `Adaptive Filtering at Scale
Example University, Dept. of CS
alice@example.org
2023
Abstract
We filter adaptively.`
	meta := Segment(Input{Text: text, Filename: "x.pdf"}, types.SegmentConfig{})
	if meta.Title != "Adaptive Filtering at Scale" {
		t.Errorf("Title = %q, want %q", meta.Title, "Adaptive Filtering at Scale")
	}
}

func TestSegmentTitleStyleHintWins(t *testing.T) {
	meta := Segment(Input{Text: samplePaper, TitleHint: "Styled Title", Filename: "p.docx"},
		types.SegmentConfig{})
	if meta.Title != "Styled Title" {
		t.Errorf("Title = %q, want style hint", meta.Title)
	}
	if meta.TitleSource != "style" {
		t.Errorf("TitleSource = %q, want style", meta.TitleSource)
	}
}

func TestSegmentTitleFirstLineFallback(t *testing.T) {
	text := "A Paper Without Any Markers\nJust body text here."
	meta := Segment(Input{Text: text, Filename: "p.pdf"}, types.SegmentConfig{})
	if meta.Title != "A Paper Without Any Markers" {
		t.Errorf("Title = %q, want first line", meta.Title)
	}
	if meta.TitleSource != "first-line" {
		t.Errorf("TitleSource = %q, want first-line", meta.TitleSource)
	}
}

func TestSegmentTitleFilenamePlaceholder(t *testing.T) {
	meta := Segment(Input{Text: "", Filename: "my_great_paper.pdf"}, types.SegmentConfig{})
	if meta.Title != "my great paper" {
		t.Errorf("Title = %q, want filename placeholder", meta.Title)
	}
	if meta.TitleSource != "filename" {
		t.Errorf("TitleSource = %q, want filename", meta.TitleSource)
	}
	if meta.Abstract != "" || len(meta.Keywords) != 0 {
		t.Errorf("empty text produced abstract %q / keywords %v", meta.Abstract, meta.Keywords)
	}
}

func TestSegmentAbstractSpan(t *testing.T) {
	meta := Segment(Input{Text: samplePaper, Filename: "p.pdf"}, types.SegmentConfig{})

	if !strings.HasPrefix(meta.Abstract, "Single-phase PWM rectifiers") {
		t.Errorf("Abstract start = %q", meta.Abstract)
	}
	if strings.Contains(meta.Abstract, "Keywords") || strings.Contains(meta.Abstract, "Introduction") {
		t.Errorf("Abstract leaked past stop marker: %q", meta.Abstract)
	}
}

func TestSegmentAbstractCap(t *testing.T) {
	text := "Abstract\n" + strings.Repeat("x", 5000)
	meta := Segment(Input{Text: text, Filename: "p.pdf"}, types.SegmentConfig{AbstractCap: 100})
	if got := len([]rune(meta.Abstract)); got > 100 {
		t.Errorf("Abstract length = %d runes, want <= 100", got)
	}
}

func TestSegmentAbstractChineseMarker(t *testing.T) {
	text := "一种新型方法\n摘要：本文提出一种新型方法用于控制系统。\n关键词：控制；优化\n引言\n正文。"
	meta := Segment(Input{Text: text, Filename: "p.pdf"}, types.SegmentConfig{})
	if !strings.HasPrefix(meta.Abstract, "本文提出") {
		t.Errorf("Abstract = %q", meta.Abstract)
	}
	if !reflect.DeepEqual(meta.Keywords, []string{"控制", "优化"}) {
		t.Errorf("Keywords = %v, want [控制 优化]", meta.Keywords)
	}
}

func TestSegmentKeywords(t *testing.T) {
	meta := Segment(Input{Text: samplePaper, Filename: "p.pdf"}, types.SegmentConfig{})

	// The trailing "2024" token is pure-numeric and must be dropped.
	want := []string{"Reinforcement Learning", "PI Control", "PWM Rectifier"}
	if !reflect.DeepEqual(meta.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", meta.Keywords, want)
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"commas", "alpha, beta, gamma", []string{"Alpha", "Beta", "Gamma"}},
		{"semicolons", "alpha; beta；gamma", []string{"Alpha", "Beta", "Gamma"}},
		{"and joiner", "alpha, beta and gamma", []string{"Alpha", "Beta", "Gamma"}},
		{"chinese joiner", "控制与优化", []string{"控制", "优化"}},
		{"dedup", "ML, ml, Ml", []string{"ML"}},
		{"numeric dropped", "2024, robotics", []string{"Robotics"}},
		{"empty", "  ,; ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitKeywords(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentBulletKeywordFallback(t *testing.T) {
	text := `A Bulleted Paper
Abstract
Short abstract body.
Introduction
• deep learning
• graph networks
Body continues.`
	meta := Segment(Input{Text: text, Filename: "p.pdf"}, types.SegmentConfig{})
	want := []string{"Deep learning", "Graph networks"}
	if !reflect.DeepEqual(meta.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", meta.Keywords, want)
	}
}

func TestSegmentNoKeywordsIsEmptyNotGuessed(t *testing.T) {
	text := "Plain Title\nAbstract\nNo labeled keyword line anywhere.\nIntroduction\nBody."
	meta := Segment(Input{Text: text, Filename: "p.pdf"}, types.SegmentConfig{})
	if meta.HasKeywords() {
		t.Errorf("Keywords = %v, want none", meta.Keywords)
	}
}

func TestSegmentConclusion(t *testing.T) {
	meta := Segment(Input{Text: samplePaper, Filename: "p.pdf"}, types.SegmentConfig{})
	if !strings.Contains(meta.Conclusion, "settling time") {
		t.Errorf("Conclusion = %q", meta.Conclusion)
	}
	if strings.Contains(meta.Conclusion, "References") {
		t.Errorf("Conclusion leaked into references: %q", meta.Conclusion)
	}
}

func TestSegmentIdempotent(t *testing.T) {
	in := Input{Text: samplePaper, Filename: "p.pdf"}
	first := Segment(in, types.SegmentConfig{})
	second := Segment(in, types.SegmentConfig{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Segment not idempotent:\n first = %+v\nsecond = %+v", first, second)
	}
}
