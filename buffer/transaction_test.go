package buffer

import "testing"

func recordEdits(s *Storage) *[]EditInfo {
	var got []EditInfo
	s.AddObserver(ObserverFunc(func(info EditInfo) { got = append(got, info) }))
	return &got
}

func TestTransaction_SingleNotificationForNestedEdits(t *testing.T) {
	s := New("hello")
	got := recordEdits(s)

	s.PerformEditingTransaction(func() {
		s.Insert(5, " world", nil)
		s.PerformEditingTransaction(func() {
			s.AddAttributes(Attributes{AttrBold: true}, Interval{Start: 0, End: 5})
		})
		if !s.InTransaction() {
			t.Fatalf("expected open transaction")
		}
		if len(*got) != 0 {
			t.Fatalf("observers ran inside the transaction")
		}
	})

	if len(*got) != 1 {
		t.Fatalf("notifications=%d, want 1", len(*got))
	}
	info := (*got)[0]
	if !info.Mask.Has(EditedCharacters) || !info.Mask.Has(EditedAttributes) {
		t.Fatalf("mask=%b, want characters|attributes", info.Mask)
	}
	if info.Range != (Interval{Start: 0, End: 11}) {
		t.Fatalf("range=%v, want {0, 11}", info.Range)
	}
	if info.ChangeInLength != 6 {
		t.Fatalf("delta=%d, want 6", info.ChangeInLength)
	}
	if info.VersionBefore != 0 || info.VersionAfter != 2 {
		t.Fatalf("versions=%d->%d, want 0->2", info.VersionBefore, info.VersionAfter)
	}
	if s.InTransaction() {
		t.Fatalf("transaction should be closed")
	}
}

func TestTransaction_EmptyTransactionIsSilent(t *testing.T) {
	s := New("abc")
	got := recordEdits(s)
	s.PerformEditingTransaction(func() {})
	if len(*got) != 0 {
		t.Fatalf("empty transaction notified observers")
	}
}

func TestTransaction_UnionMapsEarlierEdits(t *testing.T) {
	s := New("0123456789")
	got := recordEdits(s)

	s.PerformEditingTransaction(func() {
		s.Delete(Interval{Start: 7, End: 9}) // 01234569
		s.Insert(1, "ab", nil)               // 0ab1234569
	})

	info := (*got)[0]
	// The delete collapsed to 7 and shifted to 9 by the insert.
	if info.Range != (Interval{Start: 1, End: 9}) {
		t.Fatalf("range=%v, want {1, 9}", info.Range)
	}
	if info.ChangeInLength != 0 {
		t.Fatalf("delta=%d, want 0", info.ChangeInLength)
	}
	if info.PreEditEnd() != 9 {
		t.Fatalf("pre-edit end=%d, want 9", info.PreEditEnd())
	}
}

func TestTransaction_DeleteReportsCaretRange(t *testing.T) {
	s := New("1234567890")
	got := recordEdits(s)
	s.Delete(Interval{Start: 9, End: 10})

	info := (*got)[0]
	if info.Range != (Interval{Start: 9, End: 9}) || info.ChangeInLength != -1 {
		t.Fatalf("info=%+v, want range {9, 9} delta -1", info)
	}
	if info.PreEditEnd() != 10 {
		t.Fatalf("pre-edit end=%d, want 10", info.PreEditEnd())
	}
}

func TestMapThroughEdit(t *testing.T) {
	cases := []struct {
		x, start, end, n, want int
	}{
		{x: 1, start: 3, end: 5, n: 1, want: 1},
		{x: 3, start: 3, end: 5, n: 1, want: 3},
		{x: 4, start: 3, end: 5, n: 1, want: 4},
		{x: 5, start: 3, end: 5, n: 1, want: 4},
		{x: 9, start: 3, end: 5, n: 4, want: 11},
	}
	for _, tc := range cases {
		if got := mapThroughEdit(tc.x, tc.start, tc.end, tc.n); got != tc.want {
			t.Fatalf("mapThroughEdit(%d, %d, %d, %d)=%d, want %d", tc.x, tc.start, tc.end, tc.n, got, tc.want)
		}
	}
}
