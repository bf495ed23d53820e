package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDialogModalKindMapsEveryType(t *testing.T) {
	cases := []struct {
		d    *Dialog
		want ModalKind
	}{
		{&Dialog{Type: DialogFind}, ModalSearch},
		{&Dialog{Type: DialogFind, ReplaceMode: true}, ModalReplace},
		{&Dialog{Type: DialogGotoLine}, ModalInput},
		{&Dialog{Type: DialogSaveAs}, ModalInput},
		{&Dialog{Type: DialogInput}, ModalInput},
		{&Dialog{Type: DialogSaveConfirm}, ModalConfirm},
		{&Dialog{Type: DialogReloadConfirm}, ModalConfirm},
		{&Dialog{Type: DialogHelp}, ModalConfirm},
		{&Dialog{Type: DialogSettings}, ModalConfirm},
		{&Dialog{Type: DialogBatchConfirm}, ModalBatch},
	}
	for _, c := range cases {
		if got := c.d.ModalKind(); got != c.want {
			t.Fatalf("Type %v: ModalKind() = %v, want %v", c.d.Type, got, c.want)
		}
	}
}

func TestQuickOpenAndCommandPaletteReportSelect(t *testing.T) {
	qo := NewQuickOpen(nil, nil)
	if qo.ModalKind() != ModalSelect {
		t.Fatalf("expected QuickOpen to report ModalSelect, got %v", qo.ModalKind())
	}
	cp := NewCommandPalette(nil, nil)
	if cp.ModalKind() != ModalSelect {
		t.Fatalf("expected CommandPalette to report ModalSelect, got %v", cp.ModalKind())
	}
}

func TestBatchConfirmDialogWalksItemsOneAtATime(t *testing.T) {
	items := []string{"a.txt", "b.txt", "c.txt"}
	d := NewBatchConfirmDialog("delete", items)
	if d.ModalKind() != ModalBatch {
		t.Fatalf("expected ModalBatch, got %v", d.ModalKind())
	}

	var answers []rune
	d.OnConfirm = func(answer rune) { answers = append(answers, answer) }

	d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	if d.BatchIndex != 0 {
		t.Fatalf("HandleKey must not itself advance BatchIndex; caller's OnConfirm owns that")
	}
	if len(answers) != 1 || answers[0] != 'y' {
		t.Fatalf("expected OnConfirm('y') to fire, got %v", answers)
	}

	d.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	if !d.ApplyToAll {
		t.Fatalf("expected [A]ll to set ApplyToAll")
	}
}

func TestBatchConfirmDialogRenders(t *testing.T) {
	d := NewBatchConfirmDialog("delete", []string{"a.txt", "b.txt"})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()

	d.Render(screen, 0, 0, 60, 1)
}
