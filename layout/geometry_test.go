package layout

import (
	"strings"
	"testing"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

func TestEngine_CaretRectAtWrapPoint(t *testing.T) {
	_, e := newEngine("aaaa bbbb", Options{WrapMode: WrapWord})
	e.SetContainerWidth(5)
	r, ok := e.CaretRect(5)
	if !ok || r != geom.R(0, 1, 0, 1) {
		t.Fatalf("caret rect=%v ok=%v, want start of second line", r, ok)
	}
	r, _ = e.CaretRect(9)
	if r != geom.R(4, 1, 0, 1) {
		t.Fatalf("end caret rect=%v", r)
	}
}

func TestEngine_EnclosingRects(t *testing.T) {
	_, e := newEngine("aaaa bbbb", Options{WrapMode: WrapWord})
	e.SetContainerWidth(5)
	got := e.EnclosingRects(buffer.Interval{Start: 3, End: 7})
	want := []geom.Rect{geom.R(3, 0, 2, 1), geom.R(0, 1, 2, 1)}
	if len(got) != len(want) {
		t.Fatalf("rects=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rect %d=%v, want %v", i, got[i], want[i])
		}
	}

	b, ok := e.BoundingRect(buffer.Interval{Start: 3, End: 7})
	if !ok || b != geom.R(0, 0, 5, 2) {
		t.Fatalf("bounding rect=%v ok=%v", b, ok)
	}
}

func TestEngine_EnclosingRects_LineBreakTakesACell(t *testing.T) {
	_, e := newEngine("ab\ncd", Options{})
	got := e.EnclosingRects(buffer.Interval{Start: 1, End: 4})
	want := []geom.Rect{geom.R(1, 0, 2, 1), geom.R(0, 1, 1, 1)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("rects=%v, want %v", got, want)
	}
}

func TestEngine_CharacterIndex(t *testing.T) {
	_, e := newEngine("hello\n世界", Options{})
	cases := []struct {
		name string
		p    geom.Point
		idx  int
		frac float64
	}{
		{name: "inside", p: geom.Pt(2.75, 0.5), idx: 2, frac: 0.75},
		{name: "past-line-end", p: geom.Pt(10, 0), idx: 4, frac: 1},
		{name: "above-document", p: geom.Pt(-1, -5), idx: 0, frac: 0},
		{name: "wide-glyph", p: geom.Pt(1, 1.2), idx: 6, frac: 0.5},
		{name: "below-document", p: geom.Pt(3, 9), idx: 7, frac: 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, frac := e.CharacterIndex(tc.p)
			if idx != tc.idx || !geom.ApproxEqual(frac, tc.frac) {
				t.Fatalf("got (%d, %v), want (%d, %v)", idx, frac, tc.idx, tc.frac)
			}
		})
	}
}

func TestEngine_CharacterIndex_WrappedLineEnd(t *testing.T) {
	_, e := newEngine("abcdefgh", Options{WrapMode: WrapGrapheme})
	e.SetContainerWidth(4)
	cases := []struct {
		name string
		p    geom.Point
		idx  int
		frac float64
	}{
		{name: "past-wrapped-end", p: geom.Pt(40, 0.5), idx: 3, frac: 0.5},
		{name: "right-edge-of-last-glyph", p: geom.Pt(3.9, 0.5), idx: 3, frac: 0.5},
		{name: "left-half-of-last-glyph", p: geom.Pt(3.25, 0.5), idx: 3, frac: 0.25},
		{name: "past-final-line-end", p: geom.Pt(40, 1.5), idx: 7, frac: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, frac := e.CharacterIndex(tc.p)
			if idx != tc.idx || !geom.ApproxEqual(frac, tc.frac) {
				t.Fatalf("got (%d, %v), want (%d, %v)", idx, frac, tc.idx, tc.frac)
			}
		})
	}
}

func TestEngine_CharacterIndex_EmptyLine(t *testing.T) {
	_, e := newEngine("a\n\nb", Options{})
	idx, frac := e.CharacterIndex(geom.Pt(5, 1))
	if idx != 2 || frac != 0 {
		t.Fatalf("got (%d, %v), want (2, 0)", idx, frac)
	}
}

func TestEngine_Navigate(t *testing.T) {
	_, e := newEngine("abc\nde\nfghij", Options{})
	cases := []struct {
		name  string
		from  buffer.Position
		dir   Direction
		count int
		want  buffer.Position
	}{
		{name: "down-to-shorter-line", from: 2, dir: Down, count: 1, want: 6},
		{name: "down-two", from: 2, dir: Down, count: 2, want: 9},
		{name: "up-keeps-x", from: 9, dir: Up, count: 2, want: 2},
		{name: "up-from-first-line", from: 1, dir: Up, count: 1, want: 0},
		{name: "down-past-end", from: 11, dir: Down, count: 5, want: 12},
		{name: "zero-count", from: 5, dir: Down, count: 0, want: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.Navigate(tc.from, tc.dir, tc.count); got != tc.want {
				t.Fatalf("Navigate(%v)=%v, want %v", tc.from, got, tc.want)
			}
		})
	}
}

func TestEngine_NavigateAcrossWrappedLines(t *testing.T) {
	_, e := newEngine("aaaa bbbb", Options{WrapMode: WrapWord})
	e.SetContainerWidth(5)
	if got := e.Navigate(1, Down, 1); got != 6 {
		t.Fatalf("down=%v, want 6", got)
	}
	if got := e.Navigate(7, Up, 1); got != 2 {
		t.Fatalf("up=%v, want 2", got)
	}
}

func BenchmarkEngine_EditAndQueryViewport(b *testing.B) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 5000)
	s := buffer.New(text)
	e := New(s, Options{WrapMode: WrapWord})
	e.SetContainerWidth(30)
	e.Fragments()

	window := geom.R(0, 1000, 30, 40)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Insert(100, "x", nil)
		if len(e.FragmentsIntersecting(window)) == 0 {
			b.Fatal("expected visible fragments")
		}
	}
}
