package headlessterm

import "testing"

func solidImageData(n int) []byte {
	return make([]byte, n)
}

func TestImageManagerStore(t *testing.T) {
	m := NewImageManager()

	id := m.Store(10, 10, solidImageData(100))

	if id != 1 {
		t.Errorf("Store id = %d, want 1", id)
	}
	if m.ImageCount() != 1 {
		t.Errorf("ImageCount() = %d, want 1", m.ImageCount())
	}
	if m.UsedMemory() != 100 {
		t.Errorf("UsedMemory() = %d, want 100", m.UsedMemory())
	}
}

func TestImageManagerDeduplicatesIdenticalBytes(t *testing.T) {
	m := NewImageManager()
	data := []byte("test image data")

	id1 := m.Store(10, 10, data)
	id2 := m.Store(10, 10, data)

	if id1 != id2 {
		t.Errorf("identical data produced different ids: %d and %d", id1, id2)
	}
	if m.ImageCount() != 1 {
		t.Errorf("ImageCount() = %d, want 1 after dedup", m.ImageCount())
	}
}

func TestImageManagerStoreWithID(t *testing.T) {
	m := NewImageManager()

	m.StoreWithID(42, 5, 5, solidImageData(50))

	img := m.Image(42)
	if img == nil {
		t.Fatal("Image(42) = nil")
	}
	if img.Width != 5 || img.Height != 5 {
		t.Errorf("dims = %dx%d, want 5x5", img.Width, img.Height)
	}
}

func TestImageManagerPlace(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))

	placementID := m.Place(&ImagePlacement{ImageID: imageID, Row: 0, Col: 0, Cols: 5, Rows: 5})

	if placementID != 1 {
		t.Errorf("placement id = %d, want 1", placementID)
	}
	if m.PlacementCount() != 1 {
		t.Errorf("PlacementCount() = %d, want 1", m.PlacementCount())
	}
}

func TestImageManagerPlacementLookup(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))

	placementID := m.Place(&ImagePlacement{ImageID: imageID, Row: 2, Col: 3, Cols: 1, Rows: 1})

	got := m.Placement(placementID)
	if got == nil {
		t.Fatal("Placement() = nil for a placement just created")
	}
	if got.Row != 2 || got.Col != 3 {
		t.Errorf("placement position = (%d,%d), want (2,3)", got.Row, got.Col)
	}
}

func TestImageManagerDeleteImage(t *testing.T) {
	m := NewImageManager()
	id := m.Store(10, 10, solidImageData(100))

	m.DeleteImage(id)

	if m.ImageCount() != 0 {
		t.Errorf("ImageCount() = %d, want 0 after delete", m.ImageCount())
	}
	if m.UsedMemory() != 0 {
		t.Errorf("UsedMemory() = %d, want 0 after delete", m.UsedMemory())
	}
}

func TestImageManagerClear(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))
	m.Place(&ImagePlacement{ImageID: imageID, Row: 0, Col: 0, Cols: 1, Rows: 1})

	m.Clear()

	if m.ImageCount() != 0 {
		t.Errorf("ImageCount() = %d, want 0 after clear", m.ImageCount())
	}
	if m.PlacementCount() != 0 {
		t.Errorf("PlacementCount() = %d, want 0 after clear", m.PlacementCount())
	}
}

func TestImageManagerPruneDoesNotPanicUnderLowBudget(t *testing.T) {
	m := NewImageManager()
	m.SetMaxMemory(150)

	m.Store(10, 10, solidImageData(100))
	data2 := solidImageData(100)
	data2[0] = 1 // distinct bytes so it isn't deduplicated away
	m.Store(10, 10, data2)

	// Both images may still be referenced by nothing in particular here;
	// the point of this test is that storing past the budget never panics,
	// not that it always prunes down to the limit.
	_ = m.UsedMemory()
}

func TestImageManagerPlacements(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))

	m.Place(&ImagePlacement{ImageID: imageID, Row: 0, Col: 0, Cols: 1, Rows: 1})
	m.Place(&ImagePlacement{ImageID: imageID, Row: 1, Col: 1, Cols: 2, Rows: 2})

	if got := len(m.Placements()); got != 2 {
		t.Errorf("len(Placements()) = %d, want 2", got)
	}
}

func TestImageManagerDeletePlacementsByPosition(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))

	m.Place(&ImagePlacement{ImageID: imageID, Row: 0, Col: 0, Cols: 2, Rows: 2})
	m.Place(&ImagePlacement{ImageID: imageID, Row: 5, Col: 5, Cols: 2, Rows: 2})

	m.DeletePlacementsByPosition(0, 0)

	if m.PlacementCount() != 1 {
		t.Errorf("PlacementCount() = %d, want 1 after deleting the (0,0) placement", m.PlacementCount())
	}
}

func TestImageManagerDeletePlacementsInRow(t *testing.T) {
	m := NewImageManager()
	imageID := m.Store(10, 10, solidImageData(100))

	m.Place(&ImagePlacement{ImageID: imageID, Row: 0, Col: 0, Cols: 2, Rows: 2}) // spans rows 0-1
	m.Place(&ImagePlacement{ImageID: imageID, Row: 5, Col: 5, Cols: 2, Rows: 2})

	m.DeletePlacementsInRow(1)

	if m.PlacementCount() != 1 {
		t.Errorf("PlacementCount() = %d, want 1 after deleting row 1", m.PlacementCount())
	}
}

func TestCellImageLifecycle(t *testing.T) {
	cell := NewCell()

	if cell.HasImage() {
		t.Error("fresh cell should not have an image")
	}

	cell.Image = &CellImage{
		PlacementID: 1,
		ImageID:     1,
		U0:          0.0,
		V0:          0.0,
		U1:          1.0,
		V1:          1.0,
		ZIndex:      -1,
	}

	if !cell.HasImage() {
		t.Error("cell should report an image once one is set")
	}

	cell.Reset()

	if cell.HasImage() {
		t.Error("Reset should clear the image reference")
	}
}
