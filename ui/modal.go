package ui

// ModalKind tags which of the six modal kinds an overlay is, per the
// editor's at-most-one-active-modal contract: Input, Search, Replace,
// Confirm, Select, Batch.
type ModalKind int

const (
	ModalInput ModalKind = iota
	ModalSearch
	ModalReplace
	ModalConfirm
	ModalSelect
	ModalBatch
)

func (k ModalKind) String() string {
	switch k {
	case ModalInput:
		return "Input"
	case ModalSearch:
		return "Search"
	case ModalReplace:
		return "Replace"
	case ModalConfirm:
		return "Confirm"
	case ModalSelect:
		return "Select"
	case ModalBatch:
		return "Batch"
	default:
		return "Unknown"
	}
}

// Modal is anything that can occupy the editor's single modal slot: a
// key-handling overlay tagged with which of the six kinds it is.
// *Dialog, *QuickOpen, and *CommandPalette all implement it.
type Modal interface {
	ModalKind() ModalKind
}

// ModalKind classifies a Dialog by its concrete DialogType. DialogHelp
// and DialogSettings are dismiss-only informational overlays, closest in
// shape to Confirm (single acknowledgment, no typed input).
func (d *Dialog) ModalKind() ModalKind {
	switch d.Type {
	case DialogFind:
		if d.ReplaceMode {
			return ModalReplace
		}
		return ModalSearch
	case DialogGotoLine, DialogSaveAs, DialogInput:
		return ModalInput
	case DialogBatchConfirm:
		return ModalBatch
	default: // DialogSaveConfirm, DialogReloadConfirm, DialogHelp, DialogSettings
		return ModalConfirm
	}
}

// ModalKind reports QuickOpen as a fuzzy pick-one-from-list overlay.
func (q *QuickOpen) ModalKind() ModalKind { return ModalSelect }

// ModalKind reports CommandPalette as a fuzzy pick-one-from-list overlay.
func (cp *CommandPalette) ModalKind() ModalKind { return ModalSelect }
