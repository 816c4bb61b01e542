package ranking

import "testing"

func TestPaginate_LastPartialPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	slice, total, pages := Paginate(items, 4, 8)
	if total != 25 {
		t.Errorf("expected total 25, got %d", total)
	}
	if pages != 4 {
		t.Errorf("expected 4 pages, got %d", pages)
	}
	if len(slice) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(slice))
	}
	if slice[0] != 24 {
		t.Errorf("expected item 24, got %d", slice[0])
	}
}

func TestPaginate_PageBeyondEnd(t *testing.T) {
	items := []int{1, 2, 3}

	slice, total, pages := Paginate(items, 999, 8)
	if len(slice) != 0 {
		t.Fatalf("expected empty slice, got %d items", len(slice))
	}
	if total != 3 || pages != 1 {
		t.Errorf("expected total=3 pages=1, got total=%d pages=%d", total, pages)
	}
}

func TestPaginate_PageBelowOne(t *testing.T) {
	items := []int{1, 2, 3}
	slice, _, _ := Paginate(items, 0, 2)
	if len(slice) != 0 {
		t.Fatalf("expected empty slice for page 0, got %d items", len(slice))
	}
}

func TestPaginate_Empty(t *testing.T) {
	slice, total, pages := Paginate[int](nil, 1, 8)
	if len(slice) != 0 || total != 0 || pages != 0 {
		t.Errorf("expected all zero, got slice=%d total=%d pages=%d", len(slice), total, pages)
	}
}

func TestPaginate_ExactMultiple(t *testing.T) {
	items := make([]int, 16)
	_, total, pages := Paginate(items, 1, 8)
	if total != 16 || pages != 2 {
		t.Errorf("expected total=16 pages=2, got total=%d pages=%d", total, pages)
	}
}

func TestPaginate_FirstPage(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}
	slice, _, _ := Paginate(items, 1, 2)
	if len(slice) != 2 || slice[0] != 10 || slice[1] != 20 {
		t.Errorf("expected [10 20], got %v", slice)
	}
}
