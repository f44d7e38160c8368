package pagination

import "testing"

func TestNewClampsValues(t *testing.T) {
	p := New(0, 0)
	if p.Page != 1 || p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("unexpected defaults: %+v", p)
	}

	p = New(3, MaxLimit+1)
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
	if p.Offset != 2*MaxLimit {
		t.Errorf("offset = %d, want %d", p.Offset, 2*MaxLimit)
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(New(2, 10), 25)
	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if !meta.HasNext || !meta.HasPrev {
		t.Errorf("expected both next and prev: %+v", meta)
	}

	meta = GetMeta(New(1, 10), 0)
	if meta.TotalPages != 0 || meta.HasNext || meta.HasPrev {
		t.Errorf("unexpected meta for empty set: %+v", meta)
	}
}
